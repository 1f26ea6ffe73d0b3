package middleware

import (
	"github.com/gin-gonic/gin"
)

const CtxRealIPKey = "real_ip"

// ForwardedIPHeaders are honored, in order, only when the direct peer is a
// trusted proxy (see TrustProxies).
var ForwardedIPHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// TrustProxies restricts forwarded client-IP headers to peers in cidrs.
// An empty list trusts nobody, so the socket address is always used.
func TrustProxies(r *gin.Engine, cidrs []string) error {
	r.RemoteIPHeaders = ForwardedIPHeaders
	if len(cidrs) == 0 {
		return r.SetTrustedProxies(nil)
	}
	return r.SetTrustedProxies(cidrs)
}

// RealIP stores the client IP resolved by gin's trusted-proxy rules.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxRealIPKey, c.ClientIP())
		c.Next()
	}
}

// ipFromCtx extracts the client IP from Gin context, falling back to "unknown"
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString(CtxRealIPKey); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}
