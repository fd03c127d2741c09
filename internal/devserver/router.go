// Package devserver is a local fixture implementing the farm backend's REST
// contract for development and integration tests. It holds no business
// aggregation beyond what the contract requires; the production backend
// stays an external collaborator.
package devserver

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server bundles the fixture's store, signing secret and logger.
type Server struct {
	store     Store
	jwtSecret string
	logger    *zap.Logger
}

// New wires the Gin engine with the REST contract over the given store.
func New(store Store, jwtSecret string, logger *zap.Logger) (*Server, *gin.Engine) {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{store: store, jwtSecret: jwtSecret, logger: logger}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.POST("/api/auth/login/", s.login)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api", authMiddleware(jwtSecret, logger))
	api.GET("/:entity/", s.listRecords)
	api.POST("/:entity/", s.createRecord)
	api.GET("/:entity/export/", s.exportRecords)
	api.PUT("/:entity/:id/", s.updateRecord)
	api.DELETE("/:entity/:id/", s.deleteRecord)

	logger.Info("fixture router initialized")

	return s, r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
