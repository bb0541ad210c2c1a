package usecases

import (
	"context"

	"github.com/examallot/router/pkg/datastructure"
	"github.com/examallot/router/pkg/fetcher"
	"github.com/examallot/router/pkg/session"
)

// Engine is the subset of *session.Session the usecases layer depends on,
// grounded on the teacher's pkg/http/usecases/interface.go pattern of
// naming a narrow interface over the concrete engine rather than importing
// it directly.
type Engine interface {
	Build(ctx context.Context, f fetcher.Fetcher, bbox fetcher.BBox, detail string, centres []session.CentreInput) (session.BuildResult, error)
	Allot(students []session.StudentInput) (session.AllotResult, error)
	PathByNodes(studentNode, centreNode datastructure.NodeID) (session.PathResult, error)
	PathByCoordinates(studentLat, studentLon, centreLat, centreLon float64) (session.PathResult, error)
	ParallelSSSP() (session.ParallelSSSPResult, error)
	Diagnostics() session.DiagnosticsReport
	HasGraph() bool
}
