package httpserver

import (
	"context"
	"net/http"
	"sync"

	"github.com/OliveiraNt/ltu-generator/internal/domain"
	"github.com/OliveiraNt/ltu-generator/internal/utils"
	"github.com/gorilla/websocket"
)

var wsUpgrader = websocket.Upgrader{
	// The editor is served and used on the same local machine.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// previewHub fans rendered previews out to websocket subscribers. Each
// subscriber holds at most one pending document and newer ones replace it.
type previewHub struct {
	mu   sync.Mutex
	subs map[domain.Variant]map[chan string]struct{}
}

func newPreviewHub() *previewHub {
	return &previewHub{subs: make(map[domain.Variant]map[chan string]struct{})}
}

func (h *previewHub) subscribe(v domain.Variant) (<-chan string, func()) {
	ch := make(chan string, 1)
	h.mu.Lock()
	if h.subs[v] == nil {
		h.subs[v] = make(map[chan string]struct{})
	}
	h.subs[v][ch] = struct{}{}
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		delete(h.subs[v], ch)
		h.mu.Unlock()
	}
}

func (h *previewHub) hasSubscribers(v domain.Variant) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[v]) > 0
}

func (h *previewHub) publish(v domain.Variant, doc string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[v] {
		select {
		case ch <- doc:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- doc:
			default:
			}
		}
	}
}

// wsPreview upgrades to WebSocket and pushes the rendered document every
// time the workspace changes. The first message is the current preview.
func (s *Server) wsPreview(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	v := ws.Variant()

	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		utils.Logger.Error("websocket upgrade failed", "variant", v, "err", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	updates, unsubscribe := s.hub.subscribe(v)
	defer unsubscribe()

	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				utils.Logger.Debug("preview client disconnected", "variant", v, "err", err)
				return
			}
		}
	}()

	if err := conn.WriteMessage(websocket.TextMessage, []byte(ws.Preview())); err != nil {
		utils.Logger.Info("websocket write failed, stopping preview", "variant", v, "err", err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case doc := <-updates:
			if err := conn.WriteMessage(websocket.TextMessage, []byte(doc)); err != nil {
				utils.Logger.Info("websocket write failed, stopping preview", "variant", v, "err", err)
				return
			}
		}
	}
}
