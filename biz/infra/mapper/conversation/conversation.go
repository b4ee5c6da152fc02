package conversation

import (
	"slices"
	"strings"
	"time"

	"github.com/xh-polaris/recruit-core-api/biz/infra/cst"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Conversation 两个用户之间的一段对话, 可以归属于某个职位或某次投递
type Conversation struct {
	ID             bson.ObjectID        `json:"id" bson:"_id"`
	Participants   []bson.ObjectID      `json:"participants" bson:"participants"`       // 参与者, 固定两人, 保持创建时的顺序
	ParticipantKey string               `json:"participant_key" bson:"participant_key"` // 排序后的参与者id, 与顺序无关
	ScopeKey       string               `json:"scope_key" bson:"scope_key"`             // application:<id> / job:<id> / direct
	JobId          bson.ObjectID        `json:"job_id,omitempty" bson:"job_id,omitempty"`
	ApplicationId  bson.ObjectID        `json:"application_id,omitempty" bson:"application_id,omitempty"`
	Messages       []bson.ObjectID      `json:"messages" bson:"messages"`                       // 消息id, 插入顺序即时间顺序
	HiddenBy       []bson.ObjectID      `json:"hidden_by,omitempty" bson:"hidden_by,omitempty"` // 隐藏了该对话的用户
	DeletedBy      map[string]time.Time `json:"deleted_by" bson:"deleted_by"`                   // 用户id -> 删除时间, 之前的消息对该用户不可见
	CreateTime     time.Time            `json:"create_time" bson:"create_time"`
	UpdateTime     time.Time            `json:"update_time" bson:"update_time"` // 每条新消息都会刷新, 用于收件箱排序
}

// Scope 对话范围, 同一对用户在不同范围下是不同的对话
type Scope struct {
	JobId         bson.ObjectID
	ApplicationId bson.ObjectID
}

// NewScope 投递优先于职位, 两者同时存在时忽略职位
func NewScope(job, application bson.ObjectID) Scope {
	if !application.IsZero() {
		return Scope{ApplicationId: application}
	}
	return Scope{JobId: job}
}

func (s Scope) Key() string {
	switch {
	case !s.ApplicationId.IsZero():
		return cst.ScopeApplication + ":" + s.ApplicationId.Hex()
	case !s.JobId.IsZero():
		return cst.ScopeJob + ":" + s.JobId.Hex()
	default:
		return cst.ScopeDirect
	}
}

// Scope 返回对话自身的范围
func (c *Conversation) Scope() Scope {
	return Scope{JobId: c.JobId, ApplicationId: c.ApplicationId}
}

// ParticipantKey 参与者集合的规范化表示
func ParticipantKey(a, b bson.ObjectID) string {
	ids := []string{a.Hex(), b.Hex()}
	slices.Sort(ids)
	return strings.Join(ids, ":")
}

func (c *Conversation) HasParticipant(uid bson.ObjectID) bool {
	return slices.Contains(c.Participants, uid)
}

// Partner 返回对话中的另一方, uid不在对话中时返回零值
func (c *Conversation) Partner(uid bson.ObjectID) bson.ObjectID {
	if !c.HasParticipant(uid) {
		return bson.NilObjectID
	}
	for _, p := range c.Participants {
		if p != uid {
			return p
		}
	}
	return bson.NilObjectID
}

func (c *Conversation) IsHiddenBy(uid bson.ObjectID) bool {
	return slices.Contains(c.HiddenBy, uid)
}

// Horizon 返回uid的删除时间
func (c *Conversation) Horizon(uid bson.ObjectID) (time.Time, bool) {
	if c.DeletedBy == nil {
		return time.Time{}, false
	}
	t, ok := c.DeletedBy[uid.Hex()]
	return t, ok
}
