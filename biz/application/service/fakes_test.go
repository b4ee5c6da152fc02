package service

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/xh-polaris/recruit-core-api/biz/infra/mapper/application"
	"github.com/xh-polaris/recruit-core-api/biz/infra/mapper/conversation"
	"github.com/xh-polaris/recruit-core-api/biz/infra/mapper/job"
	"github.com/xh-polaris/recruit-core-api/biz/infra/mapper/message"
	"github.com/xh-polaris/recruit-core-api/biz/infra/mapper/user"
	"github.com/xh-polaris/recruit-core-api/biz/infra/realtime"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// 内存实现, 语义与mongo中的原子更新一致

type fakeConversations struct {
	mu   sync.Mutex
	byId map[bson.ObjectID]*conversation.Conversation
}

func newFakeConversations() *fakeConversations {
	return &fakeConversations{byId: map[bson.ObjectID]*conversation.Conversation{}}
}

func clone(c *conversation.Conversation) *conversation.Conversation {
	cp := *c
	cp.Participants = slices.Clone(c.Participants)
	cp.Messages = slices.Clone(c.Messages)
	cp.HiddenBy = slices.Clone(c.HiddenBy)
	cp.DeletedBy = make(map[string]time.Time, len(c.DeletedBy))
	for k, v := range c.DeletedBy {
		cp.DeletedBy[k] = v
	}
	return &cp
}

func (f *fakeConversations) find(a, b bson.ObjectID, scope conversation.Scope) *conversation.Conversation {
	key := conversation.ParticipantKey(a, b)
	for _, c := range f.byId {
		if c.ParticipantKey == key && c.ScopeKey == scope.Key() {
			return c
		}
	}
	return nil
}

func (f *fakeConversations) FindOrCreate(_ context.Context, sender, receiver bson.ObjectID, scope conversation.Scope, now time.Time) (*conversation.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.find(sender, receiver, scope)
	if c == nil {
		c = &conversation.Conversation{
			ID:             bson.NewObjectID(),
			Participants:   []bson.ObjectID{sender, receiver},
			ParticipantKey: conversation.ParticipantKey(sender, receiver),
			ScopeKey:       scope.Key(),
			JobId:          scope.JobId,
			ApplicationId:  scope.ApplicationId,
			Messages:       []bson.ObjectID{},
			DeletedBy:      map[string]time.Time{},
			CreateTime:     now,
		}
		f.byId[c.ID] = c
	}
	c.HiddenBy = slices.DeleteFunc(c.HiddenBy, func(id bson.ObjectID) bool { return id == receiver })
	c.UpdateTime = now
	return clone(c), nil
}

func (f *fakeConversations) FindByParticipants(_ context.Context, a, b bson.ObjectID, scope conversation.Scope) (*conversation.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c := f.find(a, b, scope); c != nil {
		return clone(c), nil
	}
	return nil, conversation.ErrNotFound
}

func (f *fakeConversations) FindById(_ context.Context, cid, uid bson.ObjectID) (*conversation.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byId[cid]
	if !ok || !c.HasParticipant(uid) {
		return nil, conversation.ErrNotFound
	}
	return clone(c), nil
}

func (f *fakeConversations) ListByParticipant(_ context.Context, uid bson.ObjectID) ([]*conversation.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var cs []*conversation.Conversation
	for _, c := range f.byId {
		if c.HasParticipant(uid) {
			cs = append(cs, clone(c))
		}
	}
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].UpdateTime.After(cs[j].UpdateTime) })
	return cs, nil
}

func (f *fakeConversations) AppendMessage(_ context.Context, cid, mid bson.ObjectID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byId[cid]
	if !ok {
		return conversation.ErrNotFound
	}
	c.Messages = append(c.Messages, mid)
	c.UpdateTime = at
	return nil
}

func (f *fakeConversations) Hide(_ context.Context, cid, uid bson.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byId[cid]
	if !ok || !c.HasParticipant(uid) {
		return conversation.ErrNotFound
	}
	if !slices.Contains(c.HiddenBy, uid) {
		c.HiddenBy = append(c.HiddenBy, uid)
	}
	return nil
}

func (f *fakeConversations) Delete(_ context.Context, cid, uid bson.ObjectID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byId[cid]
	if !ok || !c.HasParticipant(uid) {
		return conversation.ErrNotFound
	}
	c.DeletedBy[uid.Hex()] = at
	c.HiddenBy = slices.DeleteFunc(c.HiddenBy, func(id bson.ObjectID) bool { return id == uid })
	return nil
}

func (f *fakeConversations) EnsureIndexes(context.Context) error { return nil }

func (f *fakeConversations) get(cid bson.ObjectID) *conversation.Conversation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return clone(f.byId[cid])
}

type fakeMessages struct {
	mu   sync.Mutex
	byId map[bson.ObjectID]*message.Message
}

func newFakeMessages() *fakeMessages {
	return &fakeMessages{byId: map[bson.ObjectID]*message.Message{}}
}

func (f *fakeMessages) InsertOne(_ context.Context, msg *message.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *msg
	f.byId[msg.ID] = &cp
	return nil
}

func (f *fakeMessages) ListByIds(_ context.Context, ids []bson.ObjectID, after time.Time) ([]*message.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msgs := []*message.Message{}
	// 倒序返回, 由调用方负责排序
	for i := len(ids) - 1; i >= 0; i-- {
		m, ok := f.byId[ids[i]]
		if !ok || (!after.IsZero() && !m.CreateTime.After(after)) {
			continue
		}
		cp := *m
		msgs = append(msgs, &cp)
	}
	return msgs, nil
}

func (f *fakeMessages) ListDigests(_ context.Context, ids []bson.ObjectID) ([]*message.Digest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ds := []*message.Digest{}
	for _, id := range ids {
		if m, ok := f.byId[id]; ok {
			ds = append(ds, &message.Digest{ID: m.ID, SenderId: m.SenderId, ReceiverId: m.ReceiverId, IsRead: m.IsRead, CreateTime: m.CreateTime})
		}
	}
	return ds, nil
}

func (f *fakeMessages) MarkRead(_ context.Context, ids []bson.ObjectID, receiver bson.ObjectID) (n int64, _ error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		if m, ok := f.byId[id]; ok && m.ReceiverId == receiver && !m.IsRead {
			m.IsRead = true
			n++
		}
	}
	return n, nil
}

func (f *fakeMessages) get(id bson.ObjectID) *message.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *f.byId[id]
	return &cp
}

type fakeUsers map[bson.ObjectID]*user.User

func (f fakeUsers) FindById(_ context.Context, uid bson.ObjectID) (*user.User, error) {
	if u, ok := f[uid]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

func (f fakeUsers) FindByIds(_ context.Context, uids []bson.ObjectID) ([]*user.User, error) {
	us := []*user.User{}
	for _, id := range uids {
		if u, ok := f[id]; ok {
			us = append(us, u)
		}
	}
	return us, nil
}

type fakeJobs []*job.Job

func (f fakeJobs) FindByIds(_ context.Context, ids []bson.ObjectID) ([]*job.Job, error) {
	js := []*job.Job{}
	for _, j := range f {
		if slices.Contains(ids, j.ID) {
			js = append(js, j)
		}
	}
	return js, nil
}

func (f fakeJobs) ListByRecruiter(_ context.Context, recruiter bson.ObjectID) ([]*job.Job, error) {
	js := []*job.Job{}
	for _, j := range f {
		if j.RecruiterId == recruiter {
			js = append(js, j)
		}
	}
	return js, nil
}

// fakeApplications 需按创建时间倒序给出
type fakeApplications []*application.Application

func (f fakeApplications) FindByIds(_ context.Context, ids []bson.ObjectID) ([]*application.Application, error) {
	as := []*application.Application{}
	for _, a := range f {
		if slices.Contains(ids, a.ID) {
			as = append(as, a)
		}
	}
	return as, nil
}

func (f fakeApplications) ListByStudent(_ context.Context, student bson.ObjectID) ([]*application.Application, error) {
	as := []*application.Application{}
	for _, a := range f {
		if a.StudentId == student {
			as = append(as, a)
		}
	}
	return as, nil
}

func (f fakeApplications) ListByJobs(_ context.Context, jobs []bson.ObjectID) ([]*application.Application, error) {
	as := []*application.Application{}
	for _, a := range f {
		if slices.Contains(jobs, a.JobId) {
			as = append(as, a)
		}
	}
	return as, nil
}

// fakeConn 记录推送到的事件
type fakeConn struct {
	mu     sync.Mutex
	events []*realtime.Event
}

func (c *fakeConn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, v.(*realtime.Event))
	return nil
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) received() []*realtime.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.events)
}
