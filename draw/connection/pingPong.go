package connection

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	pongWait       = 60 * time.Second
	pingPeriod     = 10 * time.Second
	writeWait      = 10 * time.Second
	maxMessageSize = 64 * 1024
)

// KeepAlive arms the read deadline and extends it on every pong, so a peer
// that stops answering pings is dropped by the next ReadMessage.
func KeepAlive(conn *websocket.Conn) {
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
}
