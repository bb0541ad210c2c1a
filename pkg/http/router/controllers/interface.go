package controllers

import (
	"context"

	"github.com/examallot/router/pkg/datastructure"
	"github.com/examallot/router/pkg/fetcher"
	"github.com/examallot/router/pkg/session"
)

// RoutingService is the controllers' view of the usecases layer, grounded
// on the teacher's pkg/http/router/controllers/interface.go pattern of
// a package-local interface rather than importing usecases directly.
type RoutingService interface {
	Build(ctx context.Context, bbox fetcher.BBox, detail string, centres []session.CentreInput) (session.BuildResult, error)
	Allot(students []session.StudentInput) (session.AllotResult, error)
	PathByNodes(studentNode, centreNode datastructure.NodeID) (session.PathResult, error)
	PathByCoordinates(studentLat, studentLon, centreLat, centreLon float64) (session.PathResult, error)
	ParallelSSSP() (session.ParallelSSSPResult, error)
	Diagnostics() session.DiagnosticsReport
	HasGraph() bool
}
