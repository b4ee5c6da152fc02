package config

import (
	"os"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/service"
	"github.com/zeromicro/go-zero/core/stores/cache"
)

var config *Config

type Auth struct {
	PublicKey string // ES256 公钥, PEM格式, 用于校验身份服务签发的token
}

type Mongo struct {
	URL string
	DB  string
}

// Realtime 实时推送配置, 未配置RedisAddr时只投递本实例上的连接
type Realtime struct {
	RedisAddr     string `json:",optional"`
	RedisPassword string `json:",optional"`
	RedisDB       int    `json:",optional"`
	Instance      string `json:",optional"`      // 实例标识, 为空时使用hostname
	PresenceTTL   int64  `json:",default=120"` // 在线状态过期时间, 秒
}

// Sensitive 敏感词配置
type Sensitive struct {
	Words []string `json:",optional"`
}

type Metrics struct {
	Addr string `json:",default=:9091"`
	Path string `json:",default=/metrics"`
}

type Config struct {
	service.ServiceConf
	ListenOn  string
	Auth      Auth
	Mongo     Mongo
	Cache     cache.CacheConf
	Realtime  Realtime  `json:",optional"`
	Sensitive Sensitive `json:",optional"`
	Metrics   Metrics   `json:",optional"`
}

func NewConfig() (*Config, error) {
	c := new(Config)
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "etc/config.yaml"
	}
	err := conf.Load(path, c)
	if err != nil {
		return nil, err
	}
	err = c.SetUp()
	if err != nil {
		return nil, err
	}
	config = c
	return config, nil
}

func GetConfig() *Config {
	return config
}
