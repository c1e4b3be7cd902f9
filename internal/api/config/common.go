package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

var defaults = map[string]any{
	"server.port":            8080,
	"server.trusted_proxies": []string{"127.0.0.1"},

	"database.dsn":          "sqlite://gazette.db",
	"database.max_idle":     10,
	"database.max_open":     100,
	"database.max_lifetime": 60,
	"database.log_level":    "warn",
	"database.auto_migrate": true,

	"redis.addr":      "127.0.0.1:6379",
	"redis.password":  "",
	"redis.db":        0,
	"redis.pool_size": 20,

	"minio.internal_endpoint": "",
	"minio.external_endpoint": "127.0.0.1:9000",
	"minio.access_key":        "",
	"minio.secret_key":        "",
	"minio.bucket":            "gazette",
	"minio.internal_use_ssl":  false,
	"minio.external_use_ssl":  false,

	"logstash.address": "",
	"logstash.index":   "logstash-gazette",
	"logstash.token":   "",

	"jwt.secret": "gazette",
	"jwt.issuer": "Gazette",
	"jwt.ttl":    24,

	"feed.default_page_size": 10,
	"feed.max_page_size":     100,
	"feed.featured_limit":    5,
	"feed.trending_limit":    10,

	"rate_limit.comment_rps":   0.2,
	"rate_limit.comment_burst": 3,

	"cors.allow_origins": []string{"*"},
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix("GAZETTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig 从文件加载配置并填充到 Cfg，文件缺失时使用默认值与环境变量
func LoadConfig() error {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

// Default 返回默认值叠加环境变量后的配置，不读取文件
func Default() *Config {
	var cfg Config
	_ = newViper().Unmarshal(&cfg)
	return &cfg
}
