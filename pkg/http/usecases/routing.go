// Package usecases is a thin service layer wrapping the routing engine,
// grounded on the teacher's pkg/http/usecases/routing.go: it holds no
// algorithmic logic of its own, only request/response shaping between the
// controllers and the session engine (spec.md §4.9/§6).
package usecases

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/examallot/router/pkg/datastructure"
	"github.com/examallot/router/pkg/fetcher"
	"github.com/examallot/router/pkg/metrics"
	"github.com/examallot/router/pkg/session"
)

type ExamAllotService struct {
	log     *zap.Logger
	engine  Engine
	fetcher fetcher.Fetcher
}

func NewExamAllotService(log *zap.Logger, engine Engine, f fetcher.Fetcher) *ExamAllotService {
	return &ExamAllotService{log: log, engine: engine, fetcher: f}
}

func (svc *ExamAllotService) Build(ctx context.Context, bbox fetcher.BBox, detail string, centres []session.CentreInput) (session.BuildResult, error) {
	start := time.Now()
	res, err := svc.engine.Build(ctx, svc.fetcher, bbox, detail, centres)
	metrics.BuildDuration.Observe(time.Since(start).Seconds())
	return res, err
}

func (svc *ExamAllotService) Allot(students []session.StudentInput) (session.AllotResult, error) {
	start := time.Now()
	res, err := svc.engine.Allot(students)
	metrics.AllotDuration.Observe(time.Since(start).Seconds())
	if err == nil {
		metrics.UnassignedStudents.Set(float64(len(students) - len(res.Assignments)))
	}
	return res, err
}

func (svc *ExamAllotService) PathByNodes(studentNode, centreNode datastructure.NodeID) (session.PathResult, error) {
	return svc.engine.PathByNodes(studentNode, centreNode)
}

func (svc *ExamAllotService) PathByCoordinates(studentLat, studentLon, centreLat, centreLon float64) (session.PathResult, error) {
	return svc.engine.PathByCoordinates(studentLat, studentLon, centreLat, centreLon)
}

func (svc *ExamAllotService) ParallelSSSP() (session.ParallelSSSPResult, error) {
	res, err := svc.engine.ParallelSSSP()
	if err == nil {
		metrics.SSSPSpeedup.Set(res.Speedup)
	}
	return res, err
}

func (svc *ExamAllotService) Diagnostics() session.DiagnosticsReport {
	return svc.engine.Diagnostics()
}

func (svc *ExamAllotService) HasGraph() bool {
	return svc.engine.HasGraph()
}
