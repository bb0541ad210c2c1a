// Command server wires logger -> session engine -> usecases -> API,
// grounded on the teacher's cmd/engine/main.go wiring order and graceful
// shutdown pattern.
package main

import (
	"context"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	examhttp "github.com/examallot/router/pkg/http"
	"github.com/examallot/router/pkg/http/usecases"
	"github.com/examallot/router/pkg/logger"
	"github.com/examallot/router/pkg/session"
	"github.com/examallot/router/pkg/util"

	"github.com/examallot/router/pkg/fetcher"
)

func main() {
	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := util.ReadConfig(); err != nil {
		log.Fatal("failed to read config", zap.Error(err))
	}

	cfg := session.Config{
		WorkerPoolSize:     viper.GetInt("WORKER_POOL_SIZE"),
		SnapK:              viper.GetInt("SNAP_K"),
		AstarBidirectional: viper.GetBool("ASTAR_BIDIRECTIONAL"),
		PlannerVariant:     viper.GetString("PLANNER_VARIANT"),
	}
	sess := session.New(log, cfg)

	overpassFetcher := fetcher.NewOverpassFetcher(viper.GetString("OVERPASS_ENDPOINT"), log)
	routingService := usecases.NewExamAllotService(log, sess, overpassFetcher)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := examhttp.NewServer(log)
	if _, err := server.Use(ctx, viper.GetBool("USE_RATE_LIMIT"), routingService); err != nil {
		log.Fatal("failed to start API server", zap.Error(err))
	}

	sig := examhttp.GracefulShutdown()
	log.Info("examallot server stopped", zap.String("signal", sig.String()))
	cancel()
}
