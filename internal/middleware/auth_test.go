package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestAdminOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		setup    func(c *gin.Context)
		wantCode int
	}{
		{"admin passes", func(c *gin.Context) { c.Set("isAdmin", true) }, http.StatusOK},
		{"non-admin blocked", func(c *gin.Context) { c.Set("isAdmin", false) }, http.StatusForbidden},
		{"unauthenticated blocked", func(c *gin.Context) {}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/x", func(c *gin.Context) { tt.setup(c); c.Next() }, AdminOnly(), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
			if w.Code != tt.wantCode {
				t.Errorf("status %d, want %d", w.Code, tt.wantCode)
			}
		})
	}
}
