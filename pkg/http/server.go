// Package http is the top-level server wiring, grounded on the teacher's
// pkg/http/server.go (NewServer/Use) and its unretrieved
// GracefulShutdown helper, rebuilt from the cmd/engine/main.go call site.
package http

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httprouter "github.com/examallot/router/pkg/http/router"
	"github.com/examallot/router/pkg/http/router/controllers"
	httpserver "github.com/examallot/router/pkg/http/server"
)

type Server struct {
	log *zap.Logger
}

func NewServer(log *zap.Logger) *Server {
	return &Server{log: log}
}

// Use starts the API server as a background goroutine under ctx, per
// spec.md §5's "multi-threaded request/reply server" model.
func (s *Server) Use(ctx context.Context, useRateLimit bool, routingService controllers.RoutingService) (*Server, error) {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("RATE_LIMIT_RPS", 20)

	config := httpserver.Config{
		Port:    viper.GetInt("API_PORT"),
		Timeout: viper.GetDuration("API_TIMEOUT"),
	}

	api := httprouter.NewAPI(s.log)

	g := errgroup.Group{}
	g.Go(func() error {
		return api.Run(ctx, config, useRateLimit, viper.GetInt("RATE_LIMIT_RPS"), routingService)
	})

	return s, nil
}

// GracefulShutdown blocks until SIGINT/SIGTERM, per the teacher's
// cmd/engine/main.go usage (`signal := http.GracefulShutdown()`).
func GracefulShutdown() os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	return <-sigCh
}
