package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/thep200/repo-visualizer/api"
	"github.com/thep200/repo-visualizer/internal/render"
	"github.com/thep200/repo-visualizer/pkg/log"
)

const (
	writeWait      = 10 * time.Second
	sessionBacklog = 4
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 8192,
	// The UI is served from the same origin as the socket
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientMessage là message điều khiển do trình duyệt gửi lên
type clientMessage struct {
	Type   string  `json:"type"`
	NX     float64 `json:"nx"`
	NY     float64 `json:"ny"`
	PX     float64 `json:"px"`
	PY     float64 `json:"py"`
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// session là một kết nối websocket đang xem scene
type session struct {
	id     string
	conn   *websocket.Conn
	frames chan *render.Frame

	// Gorilla cho phép tối đa một writer tại một thời điểm
	writeMu sync.Mutex
}

// Hub phân phối frame từ render loop tới các session websocket
type Hub struct {
	Logger   log.Logger
	Viz      *api.VisualizerAPI
	mu       sync.RWMutex
	sessions map[string]*session
}

func NewHub(logger log.Logger, viz *api.VisualizerAPI) *Hub {
	return &Hub{
		Logger:   logger,
		Viz:      viz,
		sessions: make(map[string]*session),
	}
}

// Broadcast gửi frame tới mọi session, bỏ qua session chậm
func (h *Hub) Broadcast(frame *render.Frame) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sess := range h.sessions {
		select {
		case sess.frames <- frame:
		default:
			// Session đang tụt lại, bỏ frame này
		}
	}
}

// ServeWs nâng cấp kết nối HTTP thành websocket và bắt đầu stream
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Logger.Error(ctx, "Failed to upgrade websocket: %v", err)
		return
	}

	sess := &session{
		id:     uuid.NewString(),
		conn:   conn,
		frames: make(chan *render.Frame, sessionBacklog),
	}

	h.mu.Lock()
	h.sessions[sess.id] = sess
	h.mu.Unlock()

	h.Logger.Info(ctx, "Websocket session %s connected from %s", sess.id, r.RemoteAddr)

	go h.writeLoop(ctx, sess)
	h.readLoop(ctx, sess)
}

// readLoop xử lý các message điều khiển từ trình duyệt
func (h *Hub) readLoop(ctx context.Context, sess *session) {
	defer h.drop(ctx, sess)

	for {
		var msg clientMessage
		if err := sess.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.Logger.Warn(ctx, "Websocket session %s read error: %v", sess.id, err)
			}
			return
		}

		switch msg.Type {
		case "pointer":
			h.Viz.PointerMove(msg.NX, msg.NY, msg.PX, msg.PY)
		case "click":
			if url, ok := h.Viz.Click(); ok {
				h.send(sess, map[string]string{"type": "open", "url": url})
			}
		case "view":
			if err := h.Viz.SetView(msg.Name); err != nil {
				h.send(sess, map[string]string{"type": "error", "error": err.Error()})
			}
		case "resize":
			h.Viz.Resize(msg.Width, msg.Height)
		default:
			h.Logger.Warn(ctx, "Websocket session %s sent unknown message type %q", sess.id, msg.Type)
		}
	}
}

// writeLoop đẩy frame từ hub xuống trình duyệt
func (h *Hub) writeLoop(ctx context.Context, sess *session) {
	for frame := range sess.frames {
		payload, err := json.Marshal(map[string]interface{}{
			"type":  "frame",
			"frame": frame,
		})
		if err != nil {
			h.Logger.Error(ctx, "Failed to marshal frame: %v", err)
			continue
		}

		sess.writeMu.Lock()
		sess.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err = sess.conn.WriteMessage(websocket.TextMessage, payload)
		sess.writeMu.Unlock()
		if err != nil {
			return
		}
	}
}

func (h *Hub) send(sess *session, v interface{}) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	sess.writeMu.Lock()
	sess.conn.SetWriteDeadline(time.Now().Add(writeWait))
	sess.conn.WriteMessage(websocket.TextMessage, payload)
	sess.writeMu.Unlock()
}

// drop gỡ session khỏi hub và đóng kết nối
func (h *Hub) drop(ctx context.Context, sess *session) {
	h.mu.Lock()
	if _, ok := h.sessions[sess.id]; ok {
		delete(h.sessions, sess.id)
		close(sess.frames)
	}
	h.mu.Unlock()

	sess.conn.Close()
	h.Logger.Info(ctx, "Websocket session %s disconnected", sess.id)
}

// CloseAll đóng toàn bộ session đang mở
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, sess := range h.sessions {
		close(sess.frames)
		sess.conn.Close()
		delete(h.sessions, id)
	}
}

// SessionCount trả về số session đang kết nối
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}
