package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/3ddruckrorbas/Druck/internal/mw"
)

// RouterOptions carries the HTTP-level knobs from the configuration.
type RouterOptions struct {
	RateLimitPerSec float64
	RateLimitBurst  int
	StaticDir       string
}

// NewRouter creates and configures a new Gin router.
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	r := gin.Default()

	r.Use(cors.Default())

	api := r.Group("/api")
	api.Use(mw.RateLimiter(rate.Limit(opts.RateLimitPerSec), opts.RateLimitBurst))
	{
		api.GET("/orders", handler.ListOrders)
		api.POST("/orders", handler.CreateOrder)
		api.PUT("/orders/:id", handler.UpdateOrder)
		api.DELETE("/orders/:id", handler.DeleteOrder)

		api.GET("/filaments", handler.ListFilaments)
		api.POST("/filaments", handler.CreateFilament)
		api.PUT("/filaments/:id", handler.UpdateFilament)
		api.DELETE("/filaments/:id", handler.DeleteFilament)

		api.POST("/auth/login", handler.Login)
		api.POST("/auth/verify", handler.Verify)

		api.GET("/admin/passwords", handler.ListPasswords)
		api.POST("/admin/passwords", handler.AddPassword)
		api.DELETE("/admin/passwords/:password", handler.RemovePassword)
	}

	// Everything else falls through to the single-page app.
	r.NoRoute(spaFallback(opts.StaticDir))

	return r
}

// spaFallback serves files from the static directory and falls back to
// its index document for any other GET, so client-side routes resolve.
func spaFallback(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.Status(http.StatusNotFound)
			return
		}

		requested := filepath.Join(staticDir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			c.File(requested)
			return
		}
		c.File(filepath.Join(staticDir, "index.html"))
	}
}
