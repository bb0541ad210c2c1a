// Package server is rebuilt from its call site in the teacher's
// pkg/http/router/router.go (`http_server.Config{Port, Timeout}`,
// `http_server.New(ctx, handler, config, useTLS)`) — the package itself
// was not part of the retrieval pack.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Config is the HTTP server's tunables, read from viper in pkg/http's
// Server.Use.
type Config struct {
	Port    int
	Timeout time.Duration
}

// New builds an *http.Server bound to config.Port, with read/write/idle
// timeouts derived from config.Timeout and a context-derived base context
// so in-flight handlers observe ctx cancellation.
func New(ctx context.Context, handler http.Handler, config Config, useTLS bool) *http.Server {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Port),
		Handler:           handler,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
		IdleTimeout:       2 * timeout,
		ReadHeaderTimeout: timeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}
}
