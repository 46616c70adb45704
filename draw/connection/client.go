package connection

import (
	"sync"
	"time"

	"drawnguess/draw/broadcast"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const sendBuffer = 256

// Limits caps how fast one connection may chat and draw.
type Limits struct {
	ChatPerSecond float64
	ChatBurst     int
	DrawPerSecond float64
	DrawBurst     int
}

func DefaultLimits() Limits {
	return Limits{ChatPerSecond: 2, ChatBurst: 5, DrawPerSecond: 60, DrawBurst: 120}
}

// Client is one websocket connection. Outbound frames are queued on send and
// written by WritePump, so Send never blocks the room that calls it.
type Client struct {
	ID   string
	Conn *websocket.Conn

	send   chan []byte
	done   chan struct{}
	once   sync.Once
	chat   *rate.Limiter
	draw   *rate.Limiter
	logger *zap.Logger
}

func NewClient(conn *websocket.Conn, limits Limits, logger *zap.Logger) *Client {
	id := uuid.New().String()
	return &Client{
		ID:     id,
		Conn:   conn,
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
		chat:   rate.NewLimiter(rate.Limit(limits.ChatPerSecond), limits.ChatBurst),
		draw:   rate.NewLimiter(rate.Limit(limits.DrawPerSecond), limits.DrawBurst),
		logger: logger.With(zap.String("client", id)),
	}
}

// Send queues an event for this client. Frames are dropped when the buffer is
// full or the client is gone.
func (c *Client) Send(event string, payload any) {
	msg, err := broadcast.Encode(event, payload)
	if err != nil {
		c.logger.Error("Failed to encode message", zap.String("event", event), zap.Error(err))
		return
	}
	select {
	case <-c.done:
		return
	default:
	}
	select {
	case c.send <- msg:
	case <-c.done:
	default:
		c.logger.Warn("Send buffer full, dropping message", zap.String("event", event))
	}
}

func (c *Client) SendError(message string) {
	c.Send("error", message)
}

func (c *Client) AllowChat() bool {
	return c.chat.Allow()
}

func (c *Client) AllowDraw() bool {
	return c.draw.Allow()
}

// Outbound exposes the queued frames.
func (c *Client) Outbound() <-chan []byte {
	return c.send
}

func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close stops the write pump and closes the socket. Safe to call more than once.
func (c *Client) Close() {
	c.once.Do(func() {
		close(c.done)
		if c.Conn != nil {
			c.Conn.Close()
		}
	})
}

// WritePump drains the send queue onto the socket and pings on a fixed period.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.logger.Info("Write failed, closing client", zap.Error(err))
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Info("Error sending ping", zap.Error(err))
				return
			}
		case <-c.done:
			return
		}
	}
}
