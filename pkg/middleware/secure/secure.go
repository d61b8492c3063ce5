package secure

import (
	ginsecure "github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
)

// Headers sets a conservative baseline of browser security headers. TLS
// redirects and HSTS are left to the fronting proxy.
func Headers() gin.HandlerFunc {
	apply := ginsecure.New(ginsecure.Config{
		CustomFrameOptionsValue: "SAMEORIGIN",
		ContentTypeNosniff:      true,
		IENoOpen:                true,
		ReferrerPolicy:          "no-referrer",
	})
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-DNS-Prefetch-Control", "off")
		h.Set("Cross-Origin-Resource-Policy", "cross-origin")
		apply(c)
	}
}
