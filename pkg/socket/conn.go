package socket

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	heartbeatInterval = 10 * time.Second // 心跳检测间隔时间
	heartbeatTimeout  = 35 * time.Second // 心跳检测超时时间
	writeWait         = 5 * time.Second
)

var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Serve 把订阅者的消息写到 websocket，连接断开或 ctx 结束时返回
func Serve(ctx context.Context, conn *websocket.Conn, sub *Subscriber) error {
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(heartbeatTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(heartbeatTimeout))
	})

	// 只读 pong / close 帧，客户端不通过 websocket 发业务消息
	readErr := make(chan error, 1)
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				readErr <- err
				return
			}
		}
	}()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return writeClose(conn, websocket.CloseGoingAway, "server shutdown")
		case err := <-readErr:
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		case msg, ok := <-sub.C:
			if !ok {
				return writeClose(conn, websocket.CloseNormalClosure, "stream ended")
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		}
	}
}

func writeClose(conn *websocket.Conn, code int, text string) error {
	return conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, text), time.Now().Add(writeWait))
}
