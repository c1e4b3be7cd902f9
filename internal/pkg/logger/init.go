package logger

import (
	"Gazette/internal/api/config"
	"io"
	log "log/slog"
	"net"
	"os"
)

var (
	LogWriter io.Writer = os.Stdout

	logIndex = "logstash-gazette"
	logToken string
)

// InitLogger 初始化全局 slog，配置了 Logstash 时同时上报带 trace_id 的日志
func InitLogger(cfg config.LogstashConfig) {
	hStdout := log.NewJSONHandler(os.Stdout, &log.HandlerOptions{Level: log.LevelInfo})

	var finalHandler log.Handler = hStdout

	if cfg.Index != "" {
		logIndex = cfg.Index
	}
	logToken = cfg.Token

	if cfg.Address != "" {
		conn, err := net.Dial("tcp", cfg.Address)
		if err == nil {
			hRemote := log.NewJSONHandler(conn, &log.HandlerOptions{Level: log.LevelInfo}).
				WithAttrs([]log.Attr{
					log.String("target_index", logIndex),
					log.String("log_token", logToken),
				})

			finalHandler = &TeeHandler{
				handlers: []log.Handler{hStdout, &RemoteFilterHandler{next: hRemote}},
			}
			LogWriter = conn
		} else {
			log.Warn("Failed to connect to Logstash, logging to stdout only", "err", err)
		}
	}

	log.SetDefault(log.New(&ContextHandler{finalHandler}))
}
