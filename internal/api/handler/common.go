package handler

import (
	"Gazette/internal/api/dto"
	"Gazette/internal/api/middleware"
	"Gazette/internal/pkg/util"
	"Gazette/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// actorFrom 从鉴权中间件写入的上下文中取出当前用户
func actorFrom(c *gin.Context) service.Actor {
	return service.Actor{
		UserID: c.GetUint64(middleware.ContextUserID),
		Role:   c.GetString(middleware.ContextRole),
	}
}

// pathID 解析路径参数，非法 ID 按资源不存在处理
func pathID(c *gin.Context, name string, notFound error) (uint64, error) {
	id, ok := util.ParseID(c.Param(name))
	if !ok {
		return 0, notFound
	}
	return id, nil
}

// imageUpload 读取可选的 image 文件，未上传时返回 nil；调用方负责 close
func imageUpload(c *gin.Context) (*dto.ImageUpload, func(), error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, service.ErrImageInvalid
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &dto.ImageUpload{
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
		Reader:   file,
	}, func() { _ = file.Close() }, nil
}
