// Package router wires the httprouter mux, middleware chain, and
// controllers, grounded on the teacher's pkg/http/router/router.go
// (httprouter + alice + cors), trimmed of the websocket map-matching
// proxy — SPEC_FULL names no live map-matching module.
package router

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/examallot/router/pkg/http/router/controllers"
	helper "github.com/examallot/router/pkg/http/router/routerhelper"
	httpserver "github.com/examallot/router/pkg/http/server"
	"github.com/examallot/router/pkg/metrics"
)

type API struct {
	log *zap.Logger
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

// Run mounts /api's routes, /healthz, and /metrics behind the middleware
// chain described in spec.md §5/§9, then serves until ctx is cancelled.
func (api *API) Run(ctx context.Context, config httpserver.Config, useRateLimit bool, rateLimitRPS int, routingService controllers.RoutingService) error {
	metrics.RegisterDefault()

	mux := httprouter.New()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	mux.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	group := helper.NewRouteGroup(mux, "/api")
	controllers.New(routingService, api.log).Routes(group)

	mwChain := []alice.Constructor{
		corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Logger(api.log), Labels, metricsMiddleware,
	}
	if useRateLimit {
		mwChain = append(mwChain, Limit(rateLimitRPS))
	}
	handler := alice.New(mwChain...).Then(mux)

	srv := httpserver.New(ctx, handler, config, false)
	api.log.Info("examallot API listening", zap.Int("port", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		api.log.Info("HTTP server stopped", zap.Error(err))
		return err
	case <-ctx.Done():
		api.log.Info("context canceled, shutting down server")
		return srv.Shutdown(context.Background())
	}
}
