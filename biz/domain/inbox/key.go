package inbox

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// KeyKind 合并键的类型, 上下文越具体优先级越高
type KeyKind uint8

const (
	ById KeyKind = iota
	ByUserAndJob
	ByUserAndApplication
)

// PartnerKey 判断活跃联系人与潜在联系人是否为同一联系人, 可直接作为map的键
type PartnerKey struct {
	Kind      KeyKind
	UserId    bson.ObjectID
	ContextId bson.ObjectID // ById时为零值
}

// KeyOf 投递优先, 其次职位, 都没有时只按用户区分
func KeyOf(user, job, application bson.ObjectID) PartnerKey {
	switch {
	case !application.IsZero():
		return PartnerKey{Kind: ByUserAndApplication, UserId: user, ContextId: application}
	case !job.IsZero():
		return PartnerKey{Kind: ByUserAndJob, UserId: user, ContextId: job}
	default:
		return PartnerKey{Kind: ById, UserId: user}
	}
}

func (k PartnerKey) String() string {
	switch k.Kind {
	case ByUserAndApplication:
		return k.UserId.Hex() + "_application_" + k.ContextId.Hex()
	case ByUserAndJob:
		return k.UserId.Hex() + "_job_" + k.ContextId.Hex()
	default:
		return k.UserId.Hex()
	}
}
