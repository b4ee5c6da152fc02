package wsx

import (
	"errors"

	"github.com/hertz-contrib/websocket"
)

var (
	NormalCloseErr   = errors.New("websocket normal close")
	AbnormalCloseErr = errors.New("websocket abnormal close")

	NormalCloseMsg = websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
)

func IsNormal(err error) bool {
	return err == nil || errors.Is(err, NormalCloseErr)
}
