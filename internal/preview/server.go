// Package preview serves the generated hosting directory locally so the
// login page can be inspected before a real deploy.
package preview

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NoobyNull/workshop-setup/pkg/logger"
)

// Server is a static file server over the scaffolded public directory.
type Server struct {
	Addr string
	Dir  string
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	// Everything else is the static hosting tree.
	router.NoRoute(gin.WrapH(http.FileServer(http.Dir(s.Dir))))

	srv := &http.Server{
		Addr:         s.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving %s on %s", s.Dir, s.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down preview server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Preview server did not shut down cleanly: %v", err)
		return err
	}
	return nil
}
