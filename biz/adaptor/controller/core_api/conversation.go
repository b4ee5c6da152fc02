package core_api

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/xh-polaris/recruit-core-api/biz/adaptor"
	"github.com/xh-polaris/recruit-core-api/biz/application/dto/core_api"
	"github.com/xh-polaris/recruit-core-api/provider"
)

// SendMessage 发送消息, 不存在对话时自动创建
// @router /api/v1/messages/:userId [POST]
func SendMessage(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.SendMessageReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.ConversationService.SendMessage(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// GetMessages 获取与某个用户在指定范围下的聊天记录
// @router /api/v1/messages/:userId [GET]
func GetMessages(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.GetMessagesReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.ConversationService.GetMessages(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListPartners 收件箱联系人列表
// @router /api/v1/conversations/partners [GET]
func ListPartners(ctx context.Context, c *app.RequestContext) {
	var req core_api.ListPartnersReq
	p := provider.Get()
	resp, err := p.ConversationService.ListPartners(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// GetUnreadCount 未读消息总数
// @router /api/v1/conversations/unread [GET]
func GetUnreadCount(ctx context.Context, c *app.RequestContext) {
	var req core_api.GetUnreadCountReq
	p := provider.Get()
	resp, err := p.ConversationService.GetUnreadCount(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// MarkAsRead 将对话中发给自己的消息标记为已读
// @router /api/v1/conversations/:conversationId/read [POST]
func MarkAsRead(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.MarkAsReadReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.ConversationService.MarkAsRead(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// HideConversation 隐藏对话
// @router /api/v1/conversations/:conversationId/hide [POST]
func HideConversation(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.HideConversationReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.ConversationService.HideConversation(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// DeleteConversation 删除对话, 只对自己生效
// @router /api/v1/conversations/:conversationId [DELETE]
func DeleteConversation(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.DeleteConversationReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.ConversationService.DeleteConversation(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
