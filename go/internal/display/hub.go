package display

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Shabbypenguin/smart-catan/go/internal/events"
	"github.com/Shabbypenguin/smart-catan/go/internal/viewmodel"
)

// ViewerHub pushes every new frame to the browsers watching the board.
type ViewerHub struct {
	viewers map[*Viewer]bool
	mu      sync.RWMutex

	// Latest frame, replayed to viewers as they connect
	last []byte

	upgrader websocket.Upgrader
	config   ViewerConfig

	broadcastCh chan *events.Event
}

// Viewer is one connected browser.
type Viewer struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
	Hub  *ViewerHub

	ConnectedAt time.Time
}

type ViewerConfig struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	SendBufferSize  int
	CheckOrigin     func(r *http.Request) bool
}

func DefaultViewerConfig() ViewerConfig {
	return ViewerConfig{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  1024,
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		SendBufferSize:  16,
		CheckOrigin: func(r *http.Request) bool {
			// The display is served on the local network only
			return true
		},
	}
}

func NewViewerHub(config ViewerConfig) *ViewerHub {
	return &ViewerHub{
		viewers: make(map[*Viewer]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config:      config,
		broadcastCh: make(chan *events.Event, 64),
	}
}

// Start processes broadcasts until ctx is cancelled, then disconnects every
// viewer.
func (h *ViewerHub) Start(ctx context.Context) {
	log.Info().Msg("viewer hub started")

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			log.Info().Msg("viewer hub shutting down")
			return
		case event := <-h.broadcastCh:
			h.handleBroadcast(event)
		}
	}
}

// Render implements session.Renderer. It never blocks the session loop: when
// the broadcast queue is full the frame is dropped, the next one replaces it.
func (h *ViewerHub) Render(page viewmodel.Page) {
	event, err := events.NewEvent(events.EventTypeBoardUpdated, events.BoardUpdatedPayload{Page: page}, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to build board update")
		return
	}

	select {
	case h.broadcastCh <- &event:
	default:
		log.Warn().Msg("broadcast channel full, dropping frame")
	}
}

// ServeWS upgrades the request and registers the viewer.
func (h *ViewerHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	if err := h.upgradeConnection(w, r); err != nil {
		log.Debug().Err(err).Str("remote", r.RemoteAddr).Msg("viewer rejected")
	}
}

func (h *ViewerHub) upgradeConnection(w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	viewer := &Viewer{
		ID:          uuid.New().String(),
		Conn:        conn,
		Send:        make(chan []byte, h.config.SendBufferSize),
		Hub:         h,
		ConnectedAt: time.Now(),
	}

	h.register(viewer)

	go viewer.writePump()
	go viewer.readPump()

	log.Info().
		Str("viewer_id", viewer.ID).
		Str("remote", r.RemoteAddr).
		Msg("viewer connected")

	return nil
}

func (h *ViewerHub) register(v *Viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.viewers[v] = true
	if h.last != nil {
		v.Send <- h.last
	}

	log.Debug().
		Str("viewer_id", v.ID).
		Int("total_viewers", len(h.viewers)).
		Msg("viewer registered")
}

func (h *ViewerHub) unregister(v *Viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.viewers[v]; ok {
		delete(h.viewers, v)
		close(v.Send)

		log.Info().Str("viewer_id", v.ID).Msg("viewer disconnected")
	}
}

func (h *ViewerHub) handleBroadcast(event *events.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal event for broadcast")
		return
	}

	h.mu.Lock()
	h.last = data
	targets := make([]*Viewer, 0, len(h.viewers))
	for v := range h.viewers {
		targets = append(targets, v)
	}
	h.mu.Unlock()

	for _, v := range targets {
		if !h.trySend(v, data) {
			// Viewer is slow or gone
			log.Warn().Str("viewer_id", v.ID).Msg("viewer send buffer full, closing connection")
			h.unregister(v)
			v.Conn.Close()
		}
	}

	log.Debug().
		Str("event_type", string(event.Type)).
		Int("viewers", len(targets)).
		Msg("frame broadcasted")
}

// trySend queues data unless the viewer was unregistered in the meantime or
// its buffer is full.
func (h *ViewerHub) trySend(v *Viewer, data []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if !h.viewers[v] {
		return true
	}
	select {
	case v.Send <- data:
		return true
	default:
		return false
	}
}

func (h *ViewerHub) closeAll() {
	h.mu.Lock()
	viewers := make([]*Viewer, 0, len(h.viewers))
	for v := range h.viewers {
		viewers = append(viewers, v)
	}
	h.mu.Unlock()

	for _, v := range viewers {
		h.unregister(v)
	}
}

// Count returns the number of connected viewers.
func (h *ViewerHub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers)
}

func (v *Viewer) writePump() {
	ticker := time.NewTicker(v.Hub.config.PingInterval)
	defer func() {
		ticker.Stop()
		v.Conn.Close()
		v.Hub.unregister(v)
	}()

	for {
		select {
		case message, ok := <-v.Send:
			_ = v.Conn.SetWriteDeadline(time.Now().Add(v.Hub.config.WriteTimeout))
			if !ok {
				_ = v.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := v.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().Err(err).Str("viewer_id", v.ID).Msg("failed to write message to WebSocket")
				return
			}

		case <-ticker.C:
			_ = v.Conn.SetWriteDeadline(time.Now().Add(v.Hub.config.WriteTimeout))
			if err := v.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Error().Err(err).Str("viewer_id", v.ID).Msg("failed to send ping")
				return
			}
		}
	}
}

// readPump only keeps the connection alive; viewers act through HTTP.
func (v *Viewer) readPump() {
	defer func() {
		v.Hub.unregister(v)
		v.Conn.Close()
	}()

	v.Conn.SetReadLimit(v.Hub.config.MaxMessageSize)
	_ = v.Conn.SetReadDeadline(time.Now().Add(v.Hub.config.ReadTimeout))
	v.Conn.SetPongHandler(func(string) error {
		return v.Conn.SetReadDeadline(time.Now().Add(v.Hub.config.ReadTimeout))
	})

	for {
		if _, _, err := v.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("viewer_id", v.ID).Msg("unexpected WebSocket close error")
			}
			return
		}
		_ = v.Conn.SetReadDeadline(time.Now().Add(v.Hub.config.ReadTimeout))
	}
}
