package realtime

// Event 推送给客户端的一帧数据
type Event struct {
	Type    string `json:"type"` // new_message / messages_read
	Payload any    `json:"payload"`
}

func NewEvent(typ string, payload any) *Event {
	return &Event{Type: typ, Payload: payload}
}
