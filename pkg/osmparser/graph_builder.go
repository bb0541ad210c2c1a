package osmparser

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/examallot/router/pkg/datastructure"
	"github.com/examallot/router/pkg/geo"
)

// Build runs the two-pass graph construction of spec.md §4.2 over doc. If
// doc has no elements (or an empty elements array), it returns ok=false and
// the caller must fall back to the synthetic grid (spec.md §4.2, §7).
func Build(doc *Document, log *zap.Logger) (*datastructure.Graph, bool) {
	if doc == nil || len(doc.Elements) == 0 {
		if log != nil {
			log.Warn("OSM document has no elements, falling back to synthetic grid")
		}
		return nil, false
	}

	g := datastructure.NewGraph()

	for _, el := range doc.Elements {
		if el.Type == "node" && el.Lat != nil && el.Lon != nil {
			g.AddNode(datastructure.Node{
				ID:  datastructure.NodeID(el.ID),
				Lat: *el.Lat,
				Lon: *el.Lon,
			})
		}
	}

	edgeCount, onewayCount := 0, 0
	for _, el := range doc.Elements {
		if el.Type != "way" {
			continue
		}
		highway := el.Tags.Find("highway")
		if highway == "" {
			continue
		}

		speedKMH := resolveSpeed(el.Tags, highway)
		oneway := isOneway(el.Tags.Find("oneway"))

		for i := 0; i+1 < len(el.Nodes); i++ {
			u := datastructure.NodeID(el.Nodes[i])
			v := datastructure.NodeID(el.Nodes[i+1])

			un, uok := g.Node(u)
			vn, vok := g.Node(v)
			if !uok || !vok {
				continue
			}

			metres := geo.HaversineMeters(un.Lat, un.Lon, vn.Lat, vn.Lon)
			w := geo.TimeSeconds(metres, speedKMH)

			g.AddEdge(u, v, w)
			edgeCount++
			if oneway {
				onewayCount++
			} else {
				g.AddEdge(v, u, w)
				edgeCount++
			}
		}
	}

	if log != nil {
		log.Info("built graph from OSM document",
			zap.Int("nodes", g.NumNodes()),
			zap.Int("directed_edges", edgeCount),
			zap.Int("oneway_segments", onewayCount),
		)
	}

	return g, true
}

// resolveSpeed parses the way's maxspeed tag if present and numeric;
// otherwise it falls back to the highway class default. A maxspeed parse
// failure is non-fatal — spec.md §4.2, §7.
func resolveSpeed(tags Tags, highway string) float64 {
	if raw := tags.Find("maxspeed"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	return geo.DefaultSpeedKMH(highway)
}

func isOneway(val string) bool {
	return val == "yes" || val == "true" || val == "1"
}

// BuildFallbackGrid generates an 80x80 grid inside the bounding box, each
// cell 8-directionally connected, per spec.md §4.2. Edge weights are
// converted to seconds using the residential default speed so the fallback
// graph can be consumed by the same downstream code as an OSM-derived one
// (Design Notes' "Unit inconsistency" remark, resolved per SPEC_FULL.md).
func BuildFallbackGrid(minLat, minLon, maxLat, maxLon float64, log *zap.Logger) *datastructure.Graph {
	const gridSize = 80
	latStep := (maxLat - minLat) / gridSize
	lonStep := (maxLon - minLon) / gridSize

	g := datastructure.NewGraph()
	ids := make([][]datastructure.NodeID, gridSize)
	nextID := datastructure.NodeID(1)

	for i := 0; i < gridSize; i++ {
		ids[i] = make([]datastructure.NodeID, gridSize)
		for j := 0; j < gridSize; j++ {
			lat := minLat + float64(i)*latStep
			lon := minLon + float64(j)*lonStep
			g.AddNode(datastructure.Node{ID: nextID, Lat: lat, Lon: lon})
			ids[i][j] = nextID
			nextID++
		}
	}

	dirs := [8][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}, {0, -1}, {-1, 0}, {-1, -1}, {-1, 1}}
	speedKMH := geo.DefaultSpeedKMH("residential")

	seen := make(map[[2]datastructure.NodeID]bool)
	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			cur := ids[i][j]
			curNode, _ := g.Node(cur)
			for _, d := range dirs {
				ni, nj := i+d[0], j+d[1]
				if ni < 0 || ni >= gridSize || nj < 0 || nj >= gridSize {
					continue
				}
				nb := ids[ni][nj]
				key := [2]datastructure.NodeID{cur, nb}
				if seen[key] {
					continue
				}
				seen[key] = true
				nbNode, _ := g.Node(nb)
				metres := geo.HaversineMeters(curNode.Lat, curNode.Lon, nbNode.Lat, nbNode.Lon)
				g.AddEdge(cur, nb, geo.TimeSeconds(metres, speedKMH))
			}
		}
	}

	if log != nil {
		log.Info("built synthetic fallback grid", zap.Int("nodes", g.NumNodes()), zap.Int("edges", g.NumEdges()))
	}
	return g
}
