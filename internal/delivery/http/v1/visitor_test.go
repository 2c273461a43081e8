package v1

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestVisitorID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name       string
		forwarded  string
		remoteAddr string
		want       string
	}{
		{"forwarded header wins verbatim", "203.0.113.9, 10.0.0.1", "192.0.2.1:5555", "203.0.113.9, 10.0.0.1"},
		{"ipv4 remote", "", "192.0.2.1:5555", "192.0.2.1"},
		{"ipv6 remote", "", "[2001:db8::1]:443", "2001:db8::1"},
		{"no port", "", "192.0.2.7", "192.0.2.7"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/", nil)
			c.Request.RemoteAddr = tc.remoteAddr
			if tc.forwarded != "" {
				c.Request.Header.Set("X-Forwarded-For", tc.forwarded)
			}
			assert.Equal(t, tc.want, visitorID(c))
		})
	}
}
