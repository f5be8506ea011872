// File: middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("testsession", store))

	router.GET("/__login", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set("userID", "owner1")
		_ = session.Save()
		c.String(http.StatusOK, "ok")
	})
	router.GET("/protected", AuthRequired, func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUserID(c))
	})
	return router
}

func TestAuthRequired_RedirectsAnonymous(t *testing.T) {
	router := setupAuthTestRouter()

	req, _ := http.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestAuthRequired_PassesLoggedIn(t *testing.T) {
	router := setupAuthTestRouter()

	req, _ := http.NewRequest("GET", "/__login", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var sessionCookie *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "testsession" {
			sessionCookie = ck
		}
	}
	assert.NotNil(t, sessionCookie)

	req, _ = http.NewRequest("GET", "/protected", nil)
	req.AddCookie(sessionCookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "owner1", w.Body.String())
}

func TestCurrentUserID_Anonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("testsession", store))
	router.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, "["+CurrentUserID(c)+"]")
	})

	req, _ := http.NewRequest("GET", "/whoami", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "[]", w.Body.String())
}
