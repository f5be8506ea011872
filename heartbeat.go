// file: heartbeat.go
package main

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"kiddushware/logger"
)

// Embedded public displays ping this endpoint periodically so operators can
// see which screens are actually alive, independent of the WebSocket feed.
var (
	displaySessions = make(map[string]time.Time)
	sessionLock     = sync.Mutex{}
)

// HeartbeatHandler updates the last seen timestamp of a public display.
func HeartbeatHandler(w http.ResponseWriter, r *http.Request) {
	displayID := r.URL.Query().Get("display_id")
	if displayID == "" {
		logger.Warn.Println("[HeartbeatHandler] Missing display ID in query params")
		http.Error(w, "Missing display ID", http.StatusBadRequest)
		return
	}

	sessionLock.Lock()
	displaySessions[displayID] = time.Now()
	sessionLock.Unlock()

	logger.Debug.Printf("[HeartbeatHandler] Updated heartbeat for display=%s", displayID)

	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprintln(w, "Heartbeat received"); err != nil {
		logger.Warn.Printf("[HeartbeatHandler] Error writing response for display=%s: %v", displayID, err)
	}
}

// CleanupRoutine drops displays that stopped pinging.
func CleanupRoutine() {
	ticker := time.NewTicker(10 * time.Second)
	for range ticker.C {
		sessionLock.Lock()
		for id, lastSeen := range displaySessions {
			if time.Since(lastSeen) > 30*time.Minute {
				logger.Info.Printf("[CleanupRoutine] Removing inactive display=%s (30 minutes)", id)
				delete(displaySessions, id)
			}
		}
		sessionLock.Unlock()
	}
}
