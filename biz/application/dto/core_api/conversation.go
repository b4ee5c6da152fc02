package core_api

import (
	"github.com/xh-polaris/recruit-core-api/biz/application/dto/basic"
)

// Message 返回给客户端的消息, 附带所属对话与上下文
type Message struct {
	Id             string `json:"id"`
	ConversationId string `json:"conversationId"`
	SenderId       string `json:"senderId"`
	ReceiverId     string `json:"receiverId"`
	Message        string `json:"message"`
	IsRead         bool   `json:"isRead"`
	JobId          string `json:"jobId,omitempty"`
	ApplicationId  string `json:"applicationId,omitempty"`
	CreateTime     int64  `json:"createTime"` // 毫秒时间戳
}

// Partner 收件箱联系人
type Partner struct {
	UserId            string `json:"userId"`
	Name              string `json:"name"`
	Avatar            string `json:"avatar,omitempty"`
	Email             string `json:"email,omitempty"`
	Role              string `json:"role,omitempty"`
	Company           string `json:"company,omitempty"`
	ConversationId    string `json:"conversationId,omitempty"` // 还没有对话的潜在联系人为空
	JobId             string `json:"jobId,omitempty"`
	JobTitle          string `json:"jobTitle,omitempty"`
	ApplicationId     string `json:"applicationId,omitempty"`
	ApplicationStatus string `json:"applicationStatus,omitempty"`
	UnreadCount       int64  `json:"unreadCount"`
	LastActive        int64  `json:"lastActive"`
	CreateTime        int64  `json:"createTime"`
}

// ReadReceipt 消息已读时推送给发送方
type ReadReceipt struct {
	ConversationId string `json:"conversationId"`
	ReaderId       string `json:"readerId"`
	UpdatedCount   int64  `json:"updatedCount"`
}

type SendMessageReq struct {
	UserId        string `json:"-" path:"userId" vd:"len($)>0"` // 接收者
	Message       string `json:"message" form:"message"`
	JobId         string `json:"jobId,omitempty" form:"jobId"`
	ApplicationId string `json:"applicationId,omitempty" form:"applicationId"`
}

type SendMessageResp struct {
	Resp    *basic.Response `json:"resp"`
	Message *Message        `json:"message"`
}

type GetMessagesReq struct {
	UserId        string `json:"-" path:"userId" vd:"len($)>0"` // 对方
	JobId         string `json:"jobId,omitempty" query:"jobId"`
	ApplicationId string `json:"applicationId,omitempty" query:"applicationId"`
}

type GetMessagesResp struct {
	Resp     *basic.Response `json:"resp"`
	Messages []*Message      `json:"messages"`
}

type ListPartnersReq struct{}

type ListPartnersResp struct {
	Resp     *basic.Response `json:"resp"`
	Partners []*Partner      `json:"partners"`
}

type GetUnreadCountReq struct{}

type GetUnreadCountResp struct {
	Resp  *basic.Response `json:"resp"`
	Count int64           `json:"count"`
}

type MarkAsReadReq struct {
	ConversationId string `json:"-" path:"conversationId" vd:"len($)>0"`
}

type MarkAsReadResp struct {
	Resp         *basic.Response `json:"resp"`
	UpdatedCount int64           `json:"updatedCount"`
}

type HideConversationReq struct {
	ConversationId string `json:"-" path:"conversationId" vd:"len($)>0"`
}

type HideConversationResp struct {
	Resp *basic.Response `json:"resp"`
}

type DeleteConversationReq struct {
	ConversationId string `json:"-" path:"conversationId" vd:"len($)>0"`
}

type DeleteConversationResp struct {
	Resp *basic.Response `json:"resp"`
}
