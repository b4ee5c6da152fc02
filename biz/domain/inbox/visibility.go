package inbox

import (
	"time"

	"github.com/xh-polaris/recruit-core-api/biz/infra/mapper/conversation"
	"github.com/xh-polaris/recruit-core-api/biz/infra/mapper/message"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Digests 消息id到消息投影
type Digests map[bson.ObjectID]*message.Digest

func NewDigests(ds []*message.Digest) Digests {
	m := make(Digests, len(ds))
	for _, d := range ds {
		m[d.ID] = d
	}
	return m
}

// latest 对话中最新消息的创建时间
func (d Digests) latest(c *conversation.Conversation) (t time.Time, ok bool) {
	for _, mid := range c.Messages {
		if dg, exist := d[mid]; exist && (!ok || dg.CreateTime.After(t)) {
			t, ok = dg.CreateTime, true
		}
	}
	return t, ok
}

// Visible 对话是否出现在viewer的收件箱中
// 隐藏的不出现; 删除过的只有在删除之后有新消息时才出现
func Visible(viewer bson.ObjectID, c *conversation.Conversation, d Digests) bool {
	if !c.HasParticipant(viewer) || c.IsHiddenBy(viewer) {
		return false
	}
	horizon, deleted := c.Horizon(viewer)
	if !deleted {
		return true
	}
	latest, ok := d.latest(c)
	return ok && latest.After(horizon)
}

// CountUnread 发给viewer的未读消息数, 不受删除时间影响
func CountUnread(viewer bson.ObjectID, c *conversation.Conversation, d Digests) (n int64) {
	for _, mid := range c.Messages {
		if dg, ok := d[mid]; ok && dg.ReceiverId == viewer && !dg.IsRead {
			n++
		}
	}
	return n
}

// ActivePartners 由viewer可见的对话得到活跃联系人, 保持对话的顺序
func ActivePartners(viewer bson.ObjectID, cs []*conversation.Conversation, d Digests) []*Partner {
	ps := make([]*Partner, 0, len(cs))
	for _, c := range cs {
		if !Visible(viewer, c, d) {
			continue
		}
		ps = append(ps, &Partner{
			UserId:         c.Partner(viewer),
			ConversationId: c.ID,
			JobId:          c.JobId,
			ApplicationId:  c.ApplicationId,
			UnreadCount:    CountUnread(viewer, c, d),
			LastActive:     c.UpdateTime,
			CreateTime:     c.CreateTime,
		})
	}
	return ps
}

// OrderByRefs 按对话中的引用顺序排列消息, 不在msgs中的引用会被跳过
func OrderByRefs(refs []bson.ObjectID, msgs []*message.Message) []*message.Message {
	byId := make(map[bson.ObjectID]*message.Message, len(msgs))
	for _, m := range msgs {
		byId[m.ID] = m
	}
	ordered := make([]*message.Message, 0, len(msgs))
	for _, id := range refs {
		if m, ok := byId[id]; ok {
			ordered = append(ordered, m)
			delete(byId, id)
		}
	}
	return ordered
}

// AfterHorizon 过滤掉viewer删除时间及之前的消息
func AfterHorizon(viewer bson.ObjectID, c *conversation.Conversation, msgs []*message.Message) []*message.Message {
	horizon, ok := c.Horizon(viewer)
	if !ok {
		return msgs
	}
	kept := make([]*message.Message, 0, len(msgs))
	for _, m := range msgs {
		if m.CreateTime.After(horizon) {
			kept = append(kept, m)
		}
	}
	return kept
}

// Suppressed viewer看不到的对话对应的联系人键, 同键的潜在联系人也不再展示
func Suppressed(viewer bson.ObjectID, cs []*conversation.Conversation, d Digests) map[PartnerKey]struct{} {
	keys := make(map[PartnerKey]struct{})
	for _, c := range cs {
		if c.HasParticipant(viewer) && !Visible(viewer, c, d) {
			keys[KeyOf(c.Partner(viewer), c.JobId, c.ApplicationId)] = struct{}{}
		}
	}
	return keys
}
