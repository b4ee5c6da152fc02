package cst

// 用户角色
const (
	RoleStudent   = "student"
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"
)

// 实时推送事件类型
const (
	EventNewMessage   = "new_message"
	EventMessagesRead = "messages_read"
)

// 对话范围
const (
	ScopeApplication = "application"
	ScopeJob         = "job"
	ScopeDirect      = "direct"
)

// mapper层字段枚举
const (
	Id             = "_id"
	Participants   = "participants"
	ParticipantKey = "participant_key"
	ScopeKey       = "scope_key"
	JobId          = "job_id"
	ApplicationId  = "application_id"
	Messages       = "messages"
	HiddenBy       = "hidden_by"
	DeletedBy      = "deleted_by"
	SenderId       = "sender_id"
	ReceiverId     = "receiver_id"
	IsRead         = "is_read"
	StudentId      = "student_id"
	RecruiterId    = "recruiter_id"
	CreateTime     = "create_time"
	UpdateTime     = "update_time"

	Set         = "$set"
	SetOnInsert = "$setOnInsert"
	Push        = "$push"
	Pull        = "$pull"
	AddToSet    = "$addToSet"
	In          = "$in"
	GT          = "$gt"
)
