package httpserver

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/OliveiraNt/ltu-generator/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestPreviewHub_LatestWins(t *testing.T) {
	h := newPreviewHub()
	require.False(t, h.hasSubscribers(domain.VariantAdvanced))

	ch, unsubscribe := h.subscribe(domain.VariantAdvanced)
	require.True(t, h.hasSubscribers(domain.VariantAdvanced))
	require.False(t, h.hasSubscribers(domain.VariantBasic))

	h.publish(domain.VariantAdvanced, "one")
	h.publish(domain.VariantAdvanced, "two")
	h.publish(domain.VariantAdvanced, "three")
	require.Equal(t, "three", <-ch)

	select {
	case doc := <-ch:
		t.Fatalf("unexpected extra preview %q", doc)
	default:
	}

	unsubscribe()
	require.False(t, h.hasSubscribers(domain.VariantAdvanced))
	h.publish(domain.VariantAdvanced, "ignored")
}

func TestWSPreview_PushesChanges(t *testing.T) {
	srv := httptest.NewServer(buildServer(t).Handler())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/tabs/advanced/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, first, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Contains(t, string(first), "#007bff")

	resp, err := http.PostForm(srv.URL+"/api/tabs/advanced/style", url.Values{"theme": {"3"}})
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	_, next, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Contains(t, string(next), "#6a1b9a")
}
