package provider

import (
	"github.com/google/wire"
	"github.com/xh-polaris/recruit-core-api/biz/application/service"
	"github.com/xh-polaris/recruit-core-api/biz/infra/config"
	"github.com/xh-polaris/recruit-core-api/biz/infra/mapper/application"
	"github.com/xh-polaris/recruit-core-api/biz/infra/mapper/conversation"
	"github.com/xh-polaris/recruit-core-api/biz/infra/mapper/job"
	"github.com/xh-polaris/recruit-core-api/biz/infra/mapper/message"
	"github.com/xh-polaris/recruit-core-api/biz/infra/mapper/user"
	"github.com/xh-polaris/recruit-core-api/biz/infra/realtime"
	"github.com/xh-polaris/recruit-core-api/pkg/ac"
)

var provider *Provider

func Init() {
	var err error
	provider, err = NewProvider()
	if err != nil {
		panic(err)
	}
}

// Provider 提供controller依赖的对象
type Provider struct {
	Config              *config.Config
	Presence            realtime.Presence
	ConversationService service.IConversationService
	RealtimeService     service.IRealtimeService
}

func Get() *Provider {
	return provider
}

// NewSensitiveFilter 由配置的敏感词构建过滤器
func NewSensitiveFilter(c *config.Config) (*ac.Filter, error) {
	return ac.NewFilter(c.Sensitive.Words)
}

var RPCSet = wire.NewSet()

var ApplicationSet = wire.NewSet(
	service.ConversationServiceSet,
	service.RealtimeServiceSet,
)

var DomainSet = wire.NewSet(
	NewSensitiveFilter,
)

var InfraSet = wire.NewSet(
	config.NewConfig,
	RPCSet,
	conversation.NewConversationMongoMapper,
	message.NewMessageMongoMapper,
	user.NewUserMongoMapper,
	job.NewJobMongoMapper,
	application.NewApplicationMongoMapper,
	realtime.NewPresence,
	realtime.NewPresenceRegistry,
)

var AllProvider = wire.NewSet(
	ApplicationSet,
	DomainSet,
	InfraSet,
)
