package v1

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/domain"
)

const (
	feedWriteWait  = 10 * time.Second
	feedPongWait   = 60 * time.Second
	feedPingPeriod = (feedPongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Admin connections are authenticated by token, not origin.
		return true
	},
}

type feedClient struct {
	conn *websocket.Conn
	send chan []byte
}

// PoolFeed pushes pool statistics to connected admin dashboards after each
// successful draw.
type PoolFeed struct {
	clients      map[*feedClient]struct{}
	clientsMutex sync.RWMutex
	broadcast    chan []byte
	register     chan *feedClient
	unregister   chan *feedClient
}

func NewPoolFeed() *PoolFeed {
	return &PoolFeed{
		clients:    make(map[*feedClient]struct{}),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *feedClient),
		unregister: make(chan *feedClient),
	}
}

func (f *PoolFeed) Run() {
	for {
		select {
		case client := <-f.register:
			f.clientsMutex.Lock()
			f.clients[client] = struct{}{}
			f.clientsMutex.Unlock()
		case client := <-f.unregister:
			f.clientsMutex.Lock()
			if _, ok := f.clients[client]; ok {
				delete(f.clients, client)
				close(client.send)
			}
			f.clientsMutex.Unlock()
		case message := <-f.broadcast:
			f.clientsMutex.Lock()
			for client := range f.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(f.clients, client)
				}
			}
			f.clientsMutex.Unlock()
		}
	}
}

// Publish never blocks the caller; events are dropped while the buffer is
// full.
func (f *PoolFeed) Publish(event domain.PoolEvent) {
	message, err := json.Marshal(event)
	if err != nil {
		zap.L().Error("failed to encode pool event", zap.Error(err))
		return
	}

	select {
	case f.broadcast <- message:
	default:
		zap.L().Warn("pool feed buffer full, dropping event", zap.String("type", event.Type))
	}
}

func (f *PoolFeed) ClientCount() int {
	f.clientsMutex.RLock()
	defer f.clientsMutex.RUnlock()

	return len(f.clients)
}

// HandleWebSocket godoc
// @Summary      Live pool statistics
// @Description  Upgrades to a WebSocket that receives a pool event after every successful draw. Browsers may pass the token as access_token.
// @Tags         pool
// @Produce      json
// @Param        access_token  query     string  false  "admin token"
// @Success      101           {string}  string  "Switching Protocols to WebSocket"
// @Failure      401           {object}  response.Err
// @Router       /admin/pool/feed [get]
// @Security BearerAuth
func (f *PoolFeed) HandleWebSocket(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &feedClient{
		conn: conn,
		send: make(chan []byte, 16),
	}
	f.register <- client

	go client.writePump()
	go client.readPump(f)
}

func (c *feedClient) writePump() {
	ticker := time.NewTicker(feedPingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only drains control frames; the feed is one-way.
func (c *feedClient) readPump(f *PoolFeed) {
	defer func() {
		f.unregister <- c
		c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(feedPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(feedPongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Warn("pool feed connection closed", zap.Error(err))
			}
			return
		}
	}
}
