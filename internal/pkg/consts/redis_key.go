package consts

const (
	TokenBlacklistKey = "auth:token:blacklist:"
)

const (
	PostMetricsJobLock = "lock:job:post:metrics"
)
