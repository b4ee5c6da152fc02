package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/wire"
	"github.com/xh-polaris/recruit-core-api/biz/adaptor"
	"github.com/xh-polaris/recruit-core-api/biz/application/dto/core_api"
	"github.com/xh-polaris/recruit-core-api/biz/domain/inbox"
	"github.com/xh-polaris/recruit-core-api/biz/infra/cst"
	"github.com/xh-polaris/recruit-core-api/biz/infra/mapper/application"
	"github.com/xh-polaris/recruit-core-api/biz/infra/mapper/conversation"
	"github.com/xh-polaris/recruit-core-api/biz/infra/mapper/job"
	"github.com/xh-polaris/recruit-core-api/biz/infra/mapper/message"
	"github.com/xh-polaris/recruit-core-api/biz/infra/mapper/user"
	"github.com/xh-polaris/recruit-core-api/biz/infra/realtime"
	"github.com/xh-polaris/recruit-core-api/biz/infra/util"
	"github.com/xh-polaris/recruit-core-api/pkg/ac"
	"github.com/xh-polaris/recruit-core-api/pkg/errorx"
	"github.com/xh-polaris/recruit-core-api/pkg/logs"
	"github.com/xh-polaris/recruit-core-api/types/errno"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// now 存储精度为毫秒, 统一截断避免比较删除时间时出现误差
var now = func() time.Time {
	return time.Now().Truncate(time.Millisecond)
}

type IConversationService interface {
	SendMessage(ctx context.Context, req *core_api.SendMessageReq) (*core_api.SendMessageResp, error)
	GetMessages(ctx context.Context, req *core_api.GetMessagesReq) (*core_api.GetMessagesResp, error)
	ListPartners(ctx context.Context, req *core_api.ListPartnersReq) (*core_api.ListPartnersResp, error)
	GetUnreadCount(ctx context.Context, req *core_api.GetUnreadCountReq) (*core_api.GetUnreadCountResp, error)
	MarkAsRead(ctx context.Context, req *core_api.MarkAsReadReq) (*core_api.MarkAsReadResp, error)
	HideConversation(ctx context.Context, req *core_api.HideConversationReq) (*core_api.HideConversationResp, error)
	DeleteConversation(ctx context.Context, req *core_api.DeleteConversationReq) (*core_api.DeleteConversationResp, error)
}

type ConversationService struct {
	ConversationMapper conversation.MongoMapper
	MessageMapper      message.MongoMapper
	UserMapper         user.MongoMapper
	JobMapper          job.MongoMapper
	ApplicationMapper  application.MongoMapper
	Presence           realtime.PresenceRegistry
	Filter             *ac.Filter
}

var ConversationServiceSet = wire.NewSet(
	wire.Struct(new(ConversationService), "*"),
	wire.Bind(new(IConversationService), new(*ConversationService)),
)

// viewer 鉴权并解析当前用户id
func viewer(ctx context.Context) (*adaptor.UserMeta, bson.ObjectID, error) {
	meta, err := adaptor.ExtractUserMeta(ctx)
	if err != nil {
		return nil, bson.NilObjectID, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}
	uid, err := bson.ObjectIDFromHex(meta.UserId)
	if err != nil {
		return nil, bson.NilObjectID, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}
	return meta, uid, nil
}

func parseId(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, errorx.WrapByCode(err, errno.OIDErrCode, errorx.KV("id", id))
	}
	return oid, nil
}

func parseScope(jobId, applicationId string) (conversation.Scope, error) {
	j, err := util.OptionalObjectID(jobId)
	if err != nil {
		return conversation.Scope{}, errorx.WrapByCode(err, errno.OIDErrCode, errorx.KV("id", jobId))
	}
	a, err := util.OptionalObjectID(applicationId)
	if err != nil {
		return conversation.Scope{}, errorx.WrapByCode(err, errno.OIDErrCode, errorx.KV("id", applicationId))
	}
	return conversation.NewScope(j, a), nil
}

func (s *ConversationService) SendMessage(ctx context.Context, req *core_api.SendMessageReq) (*core_api.SendMessageResp, error) {
	// 鉴权
	_, sender, err := viewer(ctx)
	if err != nil {
		return nil, err
	}
	receiver, err := parseId(req.UserId)
	if err != nil {
		return nil, err
	}
	scope, err := parseScope(req.JobId, req.ApplicationId)
	if err != nil {
		return nil, err
	}

	// 校验内容
	if strings.TrimSpace(req.Message) == "" {
		return nil, errorx.New(errno.MessageEmptyErrCode)
	}
	if receiver == sender {
		return nil, errorx.New(errno.ConversationSelfErrCode)
	}
	if hit, words := s.Filter.Search(req.Message, false); hit {
		return nil, errorx.New(errno.ErrSensitive, errorx.KV("text", strings.Join(words, ",")))
	}

	// 找到或创建对话, 接收者会重新看到被隐藏的对话
	at := now()
	c, err := s.ConversationMapper.FindOrCreate(ctx, sender, receiver, scope, at)
	if err != nil {
		logs.CtxErrorf(ctx, "[service] [SendMessage] find or create conversation err:%s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ConversationSendErrCode)
	}
	msg := &message.Message{
		ID:         bson.NewObjectID(),
		SenderId:   sender,
		ReceiverId: receiver,
		Content:    req.Message,
		CreateTime: at,
	}
	if err = s.MessageMapper.InsertOne(ctx, msg); err != nil {
		return nil, errorx.WrapByCode(err, errno.ConversationSendErrCode)
	}
	if err = s.ConversationMapper.AppendMessage(ctx, c.ID, msg.ID, at); err != nil {
		logs.CtxErrorf(ctx, "[service] [SendMessage] append message %s to %s err:%s", msg.ID.Hex(), c.ID.Hex(), errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ConversationSendErrCode)
	}

	m := toMessage(msg, c)
	s.push(ctx, receiver.Hex(), realtime.NewEvent(cst.EventNewMessage, m))
	return &core_api.SendMessageResp{Resp: util.Success(), Message: m}, nil
}

func (s *ConversationService) GetMessages(ctx context.Context, req *core_api.GetMessagesReq) (*core_api.GetMessagesResp, error) {
	_, uid, err := viewer(ctx)
	if err != nil {
		return nil, err
	}
	partner, err := parseId(req.UserId)
	if err != nil {
		return nil, err
	}
	scope, err := parseScope(req.JobId, req.ApplicationId)
	if err != nil {
		return nil, err
	}

	resp := &core_api.GetMessagesResp{Resp: util.Success(), Messages: []*core_api.Message{}}
	c, err := s.ConversationMapper.FindByParticipants(ctx, uid, partner, scope)
	if errors.Is(err, conversation.ErrNotFound) { // 还没有聊过
		return resp, nil
	} else if err != nil {
		return nil, errorx.WrapByCode(err, errno.ConversationGetMessagesErrCode)
	}

	horizon, _ := c.Horizon(uid)
	msgs, err := s.MessageMapper.ListByIds(ctx, c.Messages, horizon)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.ConversationGetMessagesErrCode)
	}
	for _, msg := range inbox.AfterHorizon(uid, c, inbox.OrderByRefs(c.Messages, msgs)) {
		resp.Messages = append(resp.Messages, toMessage(msg, c))
	}
	return resp, nil
}

func (s *ConversationService) ListPartners(ctx context.Context, _ *core_api.ListPartnersReq) (*core_api.ListPartnersResp, error) {
	meta, uid, err := viewer(ctx)
	if err != nil {
		return nil, err
	}
	cs, d, err := s.loadInbox(ctx, uid)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.ConversationListErrCode)
	}
	active := inbox.ActivePartners(uid, cs, d)

	// 潜在联系人
	jobs := map[bson.ObjectID]*job.Job{}
	apps := map[bson.ObjectID]*application.Application{}
	var potential []*inbox.Partner
	switch meta.Role {
	case cst.RoleStudent:
		list, err := s.ApplicationMapper.ListByStudent(ctx, uid)
		if err != nil {
			return nil, errorx.WrapByCode(err, errno.ConversationListErrCode)
		}
		jobIds := make([]bson.ObjectID, 0, len(list))
		for _, a := range list {
			apps[a.ID] = a
			jobIds = append(jobIds, a.JobId)
		}
		js, err := s.JobMapper.FindByIds(ctx, util.DistinctIDs(jobIds))
		if err != nil {
			return nil, errorx.WrapByCode(err, errno.ConversationListErrCode)
		}
		for _, j := range js {
			jobs[j.ID] = j
		}
		potential = inbox.StudentPotentials(list, jobs)
	case cst.RoleRecruiter:
		js, err := s.JobMapper.ListByRecruiter(ctx, uid)
		if err != nil {
			return nil, errorx.WrapByCode(err, errno.ConversationListErrCode)
		}
		jobIds := make([]bson.ObjectID, 0, len(js))
		for _, j := range js {
			jobs[j.ID] = j
			jobIds = append(jobIds, j.ID)
		}
		list, err := s.ApplicationMapper.ListByJobs(ctx, jobIds)
		if err != nil {
			return nil, errorx.WrapByCode(err, errno.ConversationListErrCode)
		}
		for _, a := range list {
			apps[a.ID] = a
		}
		potential = inbox.RecruiterPotentials(list, jobs)
	}

	// 隐藏或删除的对话, 同一上下文的潜在联系人也不展示
	potential = inbox.Without(potential, inbox.Suppressed(uid, cs, d))
	partners := inbox.Merge(active, potential)
	users, err := s.complete(ctx, partners, jobs, apps)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.ConversationListErrCode)
	}
	inbox.Enrich(partners, users, jobs, apps)

	resp := &core_api.ListPartnersResp{Resp: util.Success(), Partners: make([]*core_api.Partner, 0, len(partners))}
	for _, p := range partners {
		resp.Partners = append(resp.Partners, toPartner(p))
	}
	return resp, nil
}

// complete 补齐联系人引用到但尚未加载的投递与职位, 并加载联系人资料
func (s *ConversationService) complete(ctx context.Context, ps []*inbox.Partner, jobs map[bson.ObjectID]*job.Job, apps map[bson.ObjectID]*application.Application) (map[bson.ObjectID]*user.User, error) {
	var appIds, userIds []bson.ObjectID
	for _, p := range ps {
		userIds = append(userIds, p.UserId)
		if _, ok := apps[p.ApplicationId]; !ok {
			appIds = append(appIds, p.ApplicationId)
		}
	}
	as, err := s.ApplicationMapper.FindByIds(ctx, util.DistinctIDs(appIds))
	if err != nil {
		return nil, err
	}
	for _, a := range as {
		apps[a.ID] = a
	}

	var jobIds []bson.ObjectID
	for _, p := range ps {
		jid := p.JobId
		if a, ok := apps[p.ApplicationId]; ok && jid.IsZero() {
			jid = a.JobId
		}
		if _, ok := jobs[jid]; !ok {
			jobIds = append(jobIds, jid)
		}
	}
	js, err := s.JobMapper.FindByIds(ctx, util.DistinctIDs(jobIds))
	if err != nil {
		return nil, err
	}
	for _, j := range js {
		jobs[j.ID] = j
	}

	us, err := s.UserMapper.FindByIds(ctx, util.DistinctIDs(userIds))
	if err != nil {
		return nil, err
	}
	users := make(map[bson.ObjectID]*user.User, len(us))
	for _, u := range us {
		users[u.ID] = u
	}
	return users, nil
}

// GetUnreadCount 收件箱中可见对话的未读消息总数
func (s *ConversationService) GetUnreadCount(ctx context.Context, _ *core_api.GetUnreadCountReq) (*core_api.GetUnreadCountResp, error) {
	_, uid, err := viewer(ctx)
	if err != nil {
		return nil, err
	}
	cs, d, err := s.loadInbox(ctx, uid)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.ConversationUnreadErrCode)
	}
	var total int64
	for _, c := range cs {
		if inbox.Visible(uid, c, d) {
			total += inbox.CountUnread(uid, c, d)
		}
	}
	return &core_api.GetUnreadCountResp{Resp: util.Success(), Count: total}, nil
}

// loadInbox 加载用户参与的对话及其消息投影
func (s *ConversationService) loadInbox(ctx context.Context, uid bson.ObjectID) ([]*conversation.Conversation, inbox.Digests, error) {
	cs, err := s.ConversationMapper.ListByParticipant(ctx, uid)
	if err != nil {
		return nil, nil, err
	}
	var ids []bson.ObjectID
	for _, c := range cs {
		ids = append(ids, c.Messages...)
	}
	ds, err := s.MessageMapper.ListDigests(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	return cs, inbox.NewDigests(ds), nil
}

func (s *ConversationService) MarkAsRead(ctx context.Context, req *core_api.MarkAsReadReq) (*core_api.MarkAsReadResp, error) {
	_, uid, err := viewer(ctx)
	if err != nil {
		return nil, err
	}
	cid, err := parseId(req.ConversationId)
	if err != nil {
		return nil, err
	}
	c, err := s.ConversationMapper.FindById(ctx, cid, uid)
	if errors.Is(err, conversation.ErrNotFound) {
		return nil, errorx.New(errno.ConversationNotFoundErrCode)
	} else if err != nil {
		return nil, errorx.WrapByCode(err, errno.ConversationReadErrCode)
	}

	// 只会修改发给自己的消息
	n, err := s.MessageMapper.MarkRead(ctx, c.Messages, uid)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.ConversationReadErrCode)
	}
	if n > 0 {
		s.push(ctx, c.Partner(uid).Hex(), realtime.NewEvent(cst.EventMessagesRead, &core_api.ReadReceipt{
			ConversationId: c.ID.Hex(),
			ReaderId:       uid.Hex(),
			UpdatedCount:   n,
		}))
	}
	return &core_api.MarkAsReadResp{Resp: util.Success(), UpdatedCount: n}, nil
}

func (s *ConversationService) HideConversation(ctx context.Context, req *core_api.HideConversationReq) (*core_api.HideConversationResp, error) {
	_, uid, err := viewer(ctx)
	if err != nil {
		return nil, err
	}
	cid, err := parseId(req.ConversationId)
	if err != nil {
		return nil, err
	}
	if err = s.ConversationMapper.Hide(ctx, cid, uid); errors.Is(err, conversation.ErrNotFound) {
		return nil, errorx.New(errno.ConversationNotFoundErrCode)
	} else if err != nil {
		return nil, errorx.WrapByCode(err, errno.ConversationHideErrCode)
	}
	return &core_api.HideConversationResp{Resp: util.Success()}, nil
}

// DeleteConversation 将删除时间推进到当前, 之前的消息对自己不再可见
func (s *ConversationService) DeleteConversation(ctx context.Context, req *core_api.DeleteConversationReq) (*core_api.DeleteConversationResp, error) {
	_, uid, err := viewer(ctx)
	if err != nil {
		return nil, err
	}
	cid, err := parseId(req.ConversationId)
	if err != nil {
		return nil, err
	}
	if err = s.ConversationMapper.Delete(ctx, cid, uid, now()); errors.Is(err, conversation.ErrNotFound) {
		return nil, errorx.New(errno.ConversationNotFoundErrCode)
	} else if err != nil {
		return nil, errorx.WrapByCode(err, errno.ConversationDeleteErrCode)
	}
	return &core_api.DeleteConversationResp{Resp: util.Success()}, nil
}

// push 尽力推送, 对方不在线或推送失败都不影响本次请求
func (s *ConversationService) push(ctx context.Context, uid string, e *realtime.Event) {
	if s.Presence == nil {
		return
	}
	h, ok := s.Presence.Lookup(ctx, uid)
	if !ok {
		return
	}
	if err := s.Presence.Publish(ctx, h, e); err != nil {
		logs.CtxWarnf(ctx, "[service] push %s to %s err:%s", e.Type, uid, errorx.ErrorWithoutStack(err))
	}
}

func toMessage(m *message.Message, c *conversation.Conversation) *core_api.Message {
	return &core_api.Message{
		Id:             m.ID.Hex(),
		ConversationId: c.ID.Hex(),
		SenderId:       m.SenderId.Hex(),
		ReceiverId:     m.ReceiverId.Hex(),
		Message:        m.Content,
		IsRead:         m.IsRead,
		JobId:          util.Hex(c.JobId),
		ApplicationId:  util.Hex(c.ApplicationId),
		CreateTime:     util.UnixMilli(m.CreateTime),
	}
}

func toPartner(p *inbox.Partner) *core_api.Partner {
	dto := &core_api.Partner{
		UserId:            p.UserId.Hex(),
		ConversationId:    util.Hex(p.ConversationId),
		JobId:             util.Hex(p.JobId),
		JobTitle:          p.JobTitle,
		ApplicationId:     util.Hex(p.ApplicationId),
		ApplicationStatus: p.ApplicationStatus,
		UnreadCount:       p.UnreadCount,
		LastActive:        util.UnixMilli(p.LastActive),
		CreateTime:        util.UnixMilli(p.CreateTime),
	}
	if u := p.Profile; u != nil {
		dto.Name, dto.Avatar, dto.Email, dto.Role, dto.Company = u.Name, u.Avatar, u.Email, u.Role, u.Company
	}
	return dto
}
