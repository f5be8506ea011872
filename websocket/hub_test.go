// file: websocket/hub_test.go
package websocket_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiddushware/live"
	"kiddushware/models"
	"kiddushware/store"
	ws "kiddushware/websocket"
)

type hubSource struct {
	mu      sync.Mutex
	pending []models.SponsorshipRecord
}

func (h *hubSource) ListApprovedSponsorships(ownerID string) ([]models.SponsorshipRecord, error) {
	return nil, nil
}

func (h *hubSource) ListSponsorshipsByStatus(ownerID, status string) ([]models.SponsorshipRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]models.SponsorshipRecord(nil), h.pending...), nil
}

type hubResolver struct{}

func (hubResolver) Resolve(ownerID string, window int) ([]models.SponsorableItem, error) {
	return []models.SponsorableItem{
		{Type: models.TypeShabbat, ID: "2024-07-20", Title: "Parashat Pinchas", StartDate: "2024-07-20"},
	}, nil
}

func readMessage(t *testing.T, conn *gorilla.Conn) map[string]interface{} {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestHub_WorklistLifecycle(t *testing.T) {
	source := &hubSource{pending: []models.SponsorshipRecord{
		{ID: "r1", SponsorName: "Aaron", Status: models.StatusPending},
	}}
	notifier := store.NewNotifier()
	engine := live.NewEngine(source, hubResolver{}, notifier)
	hub := ws.NewHub(engine, 8)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWorklist(w, r, "owner1", models.StatusPending)
	}))
	defer server.Close()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	conn, _, err := gorilla.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	first := readMessage(t, conn)
	assert.Equal(t, "worklistUpdate", first["action"])
	assert.Equal(t, models.StatusPending, first["status"])
	assert.Len(t, first["sponsorships"], 1)

	source.mu.Lock()
	source.pending = append(source.pending, models.SponsorshipRecord{ID: "r2", SponsorName: "Sarah", Status: models.StatusPending})
	source.mu.Unlock()
	notifier.Publish(store.Change{Collection: store.CollectionSponsorships, OwnerID: "owner1"})

	second := readMessage(t, conn)
	assert.Len(t, second["sponsorships"], 2)

	// a late joiner gets the latest snapshot replayed without waiting for
	// the next mutation
	late, _, err := gorilla.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer func() { _ = late.Close() }()

	replay := readMessage(t, late)
	assert.Equal(t, "worklistUpdate", replay["action"])
	assert.Len(t, replay["sponsorships"], 2)
}

func TestHub_CalendarBroadcast(t *testing.T) {
	notifier := store.NewNotifier()
	engine := live.NewEngine(&hubSource{}, hubResolver{}, notifier)
	hub := ws.NewHub(engine, 8)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeCalendar(w, r, "owner1", "cfg1")
	}))
	defer server.Close()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	conn, _, err := gorilla.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	msg := readMessage(t, conn)
	assert.Equal(t, "calendarUpdate", msg["action"])
	items, ok := msg["items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, "Parashat Pinchas", item["title"])
}
