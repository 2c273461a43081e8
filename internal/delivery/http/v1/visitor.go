package v1

import (
	"net"

	"github.com/gin-gonic/gin"
)

// visitorID identifies an anonymous voter: the raw X-Forwarded-For value when
// present, else the connection's remote host. Nothing is normalised or
// verified, so this is a weak signal and not an access control.
func visitorID(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}
