// file: controllers/helpers_test.go
package controllers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"kiddushware/store"
)

// setupTestRouter creates a Gin engine with session middleware and minimal
// HTML templates so handlers can render without the real template tree.
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	sessionStore := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("testsession", sessionStore))

	tmpDir := t.TempDir()
	if err := createDummyTemplates(tmpDir); err != nil {
		t.Fatalf("Failed to create dummy templates: %v", err)
	}
	router.LoadHTMLGlob(filepath.Join(tmpDir, "*.html"))
	return router
}

// createDummyTemplates writes a minimal template per page the controllers
// render.
func createDummyTemplates(dir string) error {
	pages := []string{
		"index.html", "login.html", "register.html", "error.html",
		"admin.html", "events.html", "sponsorships.html", "people.html",
		"calendar.html", "form.html",
	}
	for _, name := range pages {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(`<html><body>`+name+`</body></html>`), 0600); err != nil {
			return err
		}
	}
	return nil
}

// openTestStore opens a fresh in-memory database for one test.
func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// loginAs registers a helper route that stamps the session with the given
// user id and returns the resulting session cookie for later requests.
func loginAs(router *gin.Engine, userID string) *http.Cookie {
	router.GET("/__test_login", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set("userID", userID)
		_ = session.Save()
		c.String(http.StatusOK, "session set")
	})

	req, _ := http.NewRequest("GET", "/__test_login", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.Name == "testsession" {
			return ck
		}
	}
	return nil
}
