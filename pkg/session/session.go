// Package session owns the request surface's shared mutable state (C10),
// per spec.md §9's "Global mutable state" remediation: a single struct
// holding the graph, spatial indexes, centres, the allotment lookup and the
// final assignments, guarded by a writer sync.Mutex plus a sync.RWMutex so
// that build/allot hold write-exclusivity while path/diagnostics read a
// consistent snapshot (spec.md §5).
package session

import (
	"sync"

	"go.uber.org/zap"

	"github.com/examallot/router/pkg/datastructure"
	"github.com/examallot/router/pkg/planner"
	"github.com/examallot/router/pkg/spatialindex"
)

// Config holds the session-wide tunables read from viper at startup
// (pkg/util.ReadConfig's keys).
type Config struct {
	WorkerPoolSize     int
	SnapK              int
	AstarBidirectional bool
	PlannerVariant     string
}

// Session is the owned, lock-protected session-scoped state described in
// spec.md §3 "Lifecycle & ownership" and §9.
type Session struct {
	// writeMu is the "writer exclusivity" lock of spec.md §5: Build and
	// Allot each hold it for their full mutation window (including the
	// in-place centre-load bookkeeping their respective planners/SSSP
	// passes perform), so overlapping writer requests serialize instead of
	// racing on *Centre pointers shared with mu's readers. mu itself only
	// ever needs to be held briefly, to swap in a consistent snapshot for
	// concurrent readers (path, diagnostics).
	writeMu sync.Mutex
	mu      sync.RWMutex

	log *zap.Logger
	cfg Config

	graph      *datastructure.Graph
	components *datastructure.ComponentLabels
	kdtree     *spatialindex.KdTree
	mainIndex  *spatialindex.MainComponentIndex
	snapper    *spatialindex.Snapper

	centres map[string]*datastructure.Centre
	lookup  datastructure.AllotmentLookup

	assignments datastructure.FinalAssignments
	diagnostics *studentDiagnosticsCache

	lastSSSP []sspCentreResult
}

func New(log *zap.Logger, cfg Config) *Session {
	return &Session{
		log:         log,
		cfg:         cfg,
		centres:     make(map[string]*datastructure.Centre),
		lookup:      datastructure.NewAllotmentLookup(),
		assignments: make(datastructure.FinalAssignments),
	}
}

// plannerFor resolves the configured Planner variant, defaulting to the
// tiered greedy per spec.md §4.8's "The active algorithm is the tiered
// greedy" note.
func (s *Session) plannerFor() planner.Planner {
	switch s.cfg.PlannerVariant {
	case "single_pass":
		return planner.NewSinglePass()
	default:
		return planner.NewTieredGreedy()
	}
}

// snapK defaults to 5 (spec.md §4.7's K=5), if unset.
func (s *Session) snapK() int {
	if s.cfg.SnapK > 0 {
		return s.cfg.SnapK
	}
	return 5
}

// HasGraph reports whether a build has ever completed successfully.
func (s *Session) HasGraph() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph != nil
}
