package wsx

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/websocket"
	"github.com/xh-polaris/recruit-core-api/pkg/errorx"
	"github.com/xh-polaris/recruit-core-api/pkg/logs"
)

// DefaultTimeout 控制帧写入超时
const DefaultTimeout = 5 * time.Second

var upgrader = websocket.HertzUpgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 跨域由cors中间件和token鉴权负责
	CheckOrigin: func(ctx *app.RequestContext) bool { return true },
}

// UpgradeWs 将hertz请求升级为websocket, handler返回后连接会被关闭
func UpgradeWs(ctx context.Context, c *app.RequestContext, handler func(ctx context.Context, ws *HZWSClient)) error {
	return upgrader.Upgrade(c, func(conn *websocket.Conn) {
		ws := NewHZWSClient(conn)
		defer func() {
			if err := ws.Close(); err != nil {
				logs.CtxWarnf(ctx, "[HZWSClient] close error: %s", errorx.ErrorWithoutStack(err))
			}
		}()
		handler(ctx, ws)
	})
}

// classifyErr 将错误归类
func (ws *HZWSClient) classifyErr(err error) error {
	switch {
	case err == nil:
		return nil
	case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived):
		ws.closed.Store(true)
		return NormalCloseErr
	case websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived):
		// 为了避免内部错误被隐藏, 此处日志记录错误原因
		logs.Errorf("[HZWSClient] close error: %v", err)
		ws.closed.Store(true)
		return AbnormalCloseErr
	default:
		return err
	}
}

// HZWSClient 是基于hertz-contrib/websocket的工具类, 封装了常见读写操作, 简化了异常处理
// 最佳实践是单线程读, 所以此处不设读锁, 若并发读, 需自行维护读锁
// 一个client和一个conn此处设计为一一对应, 不支持更改client的conn
type HZWSClient struct {
	// 写锁, 推送可能来自任意请求协程
	mu   sync.Mutex
	conn *websocket.Conn
	// 对端是否已关闭或本端已发送关闭帧
	closed atomic.Bool
	once   sync.Once
}

// NewHZWSClient 生成管理传入参数的client
func NewHZWSClient(conn *websocket.Conn) *HZWSClient {
	return &HZWSClient{conn: conn}
}

// Read 读取一条消息, 同时返回错误
func (ws *HZWSClient) Read() (mt int, data []byte, err error) {
	mt, data, err = ws.conn.ReadMessage()
	return mt, data, ws.classifyErr(err)
}

// ReadString 读取一条文本消息
func (ws *HZWSClient) ReadString() (string, error) {
	_, data, err := ws.Read()
	return string(data), err
}

// Write 写入指定类型消息
func (ws *HZWSClient) Write(mt int, data []byte) (err error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	_ = ws.conn.SetWriteDeadline(time.Now().Add(DefaultTimeout))
	err = ws.conn.WriteMessage(mt, data)
	return ws.classifyErr(err)
}

// WriteString 写入字符串消息
func (ws *HZWSClient) WriteString(data string) (err error) {
	return ws.Write(websocket.TextMessage, []byte(data))
}

// WriteJSON 写入序列化为JSON的对象
func (ws *HZWSClient) WriteJSON(obj any) (err error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	_ = ws.conn.SetWriteDeadline(time.Now().Add(DefaultTimeout))
	return ws.classifyErr(ws.conn.WriteJSON(obj))
}

// Ping 写入心跳消息
func (ws *HZWSClient) Ping(data []byte) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.conn.WriteControl(websocket.PingMessage, data, time.Now().Add(DefaultTimeout))
}

// Close 关闭连接, 可重复调用
func (ws *HZWSClient) Close() (err error) {
	ws.once.Do(func() {
		if !ws.closed.Swap(true) { // 对端未关闭时先发送关闭帧
			ws.mu.Lock()
			if werr := ws.conn.WriteControl(websocket.CloseMessage, NormalCloseMsg, time.Now().Add(DefaultTimeout)); werr != nil {
				logs.Warnf("[HZWSClient] send close message error: %v", werr)
			}
			ws.mu.Unlock()
		}
		err = ws.conn.Close()
	})
	return err
}

func (ws *HZWSClient) IsClosed() bool {
	return ws.closed.Load()
}
