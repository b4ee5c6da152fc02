package realtime

import (
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/xh-polaris/recruit-core-api/biz/infra/config"
	"github.com/xh-polaris/recruit-core-api/pkg/logs"
)

// NewPresence 未配置redis时只使用本地连接表
func NewPresence(c *config.Config) Presence {
	hub := NewHub()
	if c.Realtime.RedisAddr == "" {
		return hub
	}
	instance := c.Realtime.Instance
	if instance == "" {
		instance, _ = os.Hostname()
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     c.Realtime.RedisAddr,
		Password: c.Realtime.RedisPassword,
		DB:       c.Realtime.RedisDB,
	})
	logs.Infof("[realtime] use redis relay, instance: %s", instance)
	return NewRedisRelay(hub, rdb, instance, time.Duration(c.Realtime.PresenceTTL)*time.Second)
}

func NewPresenceRegistry(p Presence) PresenceRegistry {
	return p
}
