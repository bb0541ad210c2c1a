package session

import (
	"context"
	"errors"
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"

	"github.com/examallot/router/pkg/datastructure"
	"github.com/examallot/router/pkg/fetcher"
	"github.com/examallot/router/pkg/osmparser"
	"github.com/examallot/router/pkg/util"
)

// staticFetcher returns a fixed, already-parsed document regardless of the
// requested bbox/highway types, so Build can be exercised without a real
// Overpass endpoint.
type staticFetcher struct {
	doc *osmparser.Document
}

func (f staticFetcher) Fetch(ctx context.Context, bbox fetcher.BBox, highwayTypes []string) (*osmparser.Document, error) {
	return f.doc, nil
}

func f64p(v float64) *float64 { return &v }

// gridDoc builds a small 4x4 OSM-shaped grid of two-way residential ways
// covering [0,0]-[0.009,0.009], dense enough that snapping and SSSP behave
// like a real small town rather than the fallback grid.
func gridDoc() *osmparser.Document {
	var elements []osmparser.Element
	const n = 4
	ids := make([][]int64, n)
	next := int64(1)
	for i := 0; i < n; i++ {
		ids[i] = make([]int64, n)
		for j := 0; j < n; j++ {
			lat := float64(i) * 0.003
			lon := float64(j) * 0.003
			elements = append(elements, osmparser.Element{Type: "node", ID: next, Lat: f64p(lat), Lon: f64p(lon)})
			ids[i][j] = next
			next++
		}
	}
	wayID := int64(10000)
	addWay := func(a, b int64) {
		elements = append(elements, osmparser.Element{
			Type:  "way",
			ID:    wayID,
			Nodes: []int64{a, b},
			Tags:  tagsOf(map[string]string{"highway": "residential"}),
		})
		wayID++
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if j+1 < n {
				addWay(ids[i][j], ids[i][j+1])
			}
			if i+1 < n {
				addWay(ids[i][j], ids[i+1][j])
			}
		}
	}
	return &osmparser.Document{Elements: elements}
}

func tagsOf(m map[string]string) osmparser.Tags {
	out := make(osmparser.Tags, 0, len(m))
	for k, v := range m {
		out = append(out, osm.Tag{Key: k, Value: v})
	}
	return out
}

func bbox() fetcher.BBox {
	return fetcher.BBox{MinLat: 0, MinLon: 0, MaxLat: 0.009, MaxLon: 0.009}
}

func newTestSession() *Session {
	return New(nil, Config{WorkerPoolSize: 2, SnapK: 5})
}

// TestSessionBuildThenAllotScenarioS1 is spec.md §8 S1 driven through the
// full session: two centres, capacity 1 each, two students each nearer a
// different centre.
func TestSessionBuildThenAllotScenarioS1(t *testing.T) {
	s := newTestSession()
	f := staticFetcher{doc: gridDoc()}

	centres := []CentreInput{
		{CentreID: "near-origin", Lat: 0.0, Lon: 0.0, MaxCapacity: 1},
		{CentreID: "near-far", Lat: 0.009, Lon: 0.009, MaxCapacity: 1},
	}

	buildResult, err := s.Build(context.Background(), f, bbox(), "medium", centres)
	assert.NoError(t, err)
	assert.Greater(t, buildResult.NodesCount, 0)
	assert.True(t, s.HasGraph())

	students := []StudentInput{
		{StudentID: "student-near-origin", Lat: 0.0005, Lon: 0.0005, Category: datastructure.CategoryGeneral},
		{StudentID: "student-near-far", Lat: 0.0085, Lon: 0.0085, Category: datastructure.CategoryGeneral},
	}

	allotResult, err := s.Allot(students)
	assert.NoError(t, err)
	assert.Equal(t, "near-origin", allotResult.Assignments["student-near-origin"])
	assert.Equal(t, "near-far", allotResult.Assignments["student-near-far"])
}

func TestSessionAllotBeforeBuildIsBadParamInput(t *testing.T) {
	s := newTestSession()
	_, err := s.Allot([]StudentInput{{StudentID: "s1"}})
	assert.True(t, errors.Is(err, util.ErrBadParamInput))
}

// TestSessionPathByCoordinatesFindsRoute exercises C8 end-to-end via the
// K-candidate retry path (spec.md §4.7/§6).
func TestSessionPathByCoordinatesFindsRoute(t *testing.T) {
	s := newTestSession()
	f := staticFetcher{doc: gridDoc()}

	_, err := s.Build(context.Background(), f, bbox(), "medium", nil)
	assert.NoError(t, err)

	res, err := s.PathByCoordinates(0.0, 0.0, 0.009, 0.009)
	assert.NoError(t, err)
	assert.NotEmpty(t, res.Path)
}

func TestSessionPathBeforeBuildIsBadParamInput(t *testing.T) {
	s := newTestSession()
	_, err := s.PathByCoordinates(0, 0, 1, 1)
	assert.True(t, errors.Is(err, util.ErrBadParamInput))
}

// TestSessionParallelSSSPReflectsBuiltCentres is spec.md §4.6's parallel
// SSSP fan-out, exercised after a real build.
func TestSessionParallelSSSPReflectsBuiltCentres(t *testing.T) {
	s := newTestSession()
	f := staticFetcher{doc: gridDoc()}

	centres := []CentreInput{
		{CentreID: "c1", Lat: 0.0, Lon: 0.0, MaxCapacity: 5},
		{CentreID: "c2", Lat: 0.009, Lon: 0.009, MaxCapacity: 5},
	}
	_, err := s.Build(context.Background(), f, bbox(), "medium", centres)
	assert.NoError(t, err)

	result, err := s.ParallelSSSP()
	assert.NoError(t, err)
	assert.Len(t, result.Centres, 2)
	for _, c := range result.Centres {
		assert.True(t, c.Success)
	}
}

// TestSessionDiagnosticsAfterAllot is spec.md §4.10's debug surface.
func TestSessionDiagnosticsAfterAllot(t *testing.T) {
	s := newTestSession()
	f := staticFetcher{doc: gridDoc()}

	centres := []CentreInput{
		{CentreID: "c1", Lat: 0.0, Lon: 0.0, MaxCapacity: 2},
	}
	_, err := s.Build(context.Background(), f, bbox(), "medium", centres)
	assert.NoError(t, err)

	_, err = s.Allot([]StudentInput{
		{StudentID: "s1", Lat: 0.0005, Lon: 0.0005, Category: datastructure.CategoryGeneral},
	})
	assert.NoError(t, err)

	report := s.Diagnostics()
	assert.Len(t, report.Students, 1)
	assert.Equal(t, "s1", report.Students[0].StudentID)
}
