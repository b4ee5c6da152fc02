package errno

import (
	"github.com/xh-polaris/recruit-core-api/pkg/errorx/code"
)

const (
	ConversationSendErrCode        = 30001
	ConversationGetMessagesErrCode = 30002
	ConversationListErrCode        = 30003
	ConversationReadErrCode        = 30004
	ConversationHideErrCode        = 30005
	ConversationDeleteErrCode      = 30006
	ConversationNotFoundErrCode    = 30007
	ConversationUnreadErrCode      = 30008
	ConversationSelfErrCode        = 30009
	MessageEmptyErrCode            = 30010
	ErrSensitive                   = 30011
)

func init() {
	code.Register(
		ConversationSendErrCode,
		"发送消息失败",
		code.WithAffectStability(true),
	)
	code.Register(
		ConversationGetMessagesErrCode,
		"获取聊天记录失败",
		code.WithAffectStability(true),
	)
	code.Register(
		ConversationListErrCode,
		"获取联系人列表失败",
		code.WithAffectStability(true),
	)
	code.Register(
		ConversationReadErrCode,
		"标记已读失败",
		code.WithAffectStability(true),
	)
	code.Register(
		ConversationHideErrCode,
		"隐藏对话失败",
		code.WithAffectStability(true),
	)
	code.Register(
		ConversationDeleteErrCode,
		"删除对话失败",
		code.WithAffectStability(true),
	)
	code.Register(
		ConversationNotFoundErrCode,
		"对话不存在",
		code.WithAffectStability(false),
	)
	code.Register(
		ConversationUnreadErrCode,
		"获取未读消息数失败",
		code.WithAffectStability(true),
	)
	code.Register(
		ConversationSelfErrCode,
		"不能给自己发送消息",
		code.WithAffectStability(false),
	)
	code.Register(
		MessageEmptyErrCode,
		"消息内容不能为空",
		code.WithAffectStability(false),
	)
	code.Register(
		ErrSensitive,
		"消息包含敏感词: {text}",
		code.WithAffectStability(false),
	)
}
