package api

import "Gazette/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	PostHandler       *handler.PostHandler
	PostActionHandler *handler.PostActionHandler
	PostMetricHandler *handler.PostMetricHandler
	SessionHandler    *handler.SessionHandler
}
