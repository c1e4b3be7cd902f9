package service

import "Gazette/internal/pkg/consts"

// Actor 当前请求的用户身份，UserID 为 0 表示未登录
type Actor struct {
	UserID uint64
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == consts.RoleAdmin
}

func (a Actor) IsAuthenticated() bool {
	return a.UserID > 0
}

// CanModify 作者本人或管理员
func (a Actor) CanModify(ownerID uint64) bool {
	return a.IsAuthenticated() && (a.UserID == ownerID || a.IsAdmin())
}
