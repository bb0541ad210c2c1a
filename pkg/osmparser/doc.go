package osmparser

import (
	"encoding/json"

	"github.com/paulmach/osm"
)

// Tags wraps paulmach/osm's Tags so incoming Overpass-style JSON objects
// (`{"highway":"primary","oneway":"yes"}`) unmarshal into the same `Tags`
// type the teacher's parser already knows how to query with `Find`.
type Tags osm.Tags

func (t *Tags) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(osm.Tags, 0, len(raw))
	for k, v := range raw {
		out = append(out, osm.Tag{Key: k, Value: v})
	}
	*t = Tags(out)
	return nil
}

func (t Tags) Find(key string) string {
	return osm.Tags(t).Find(key)
}

// Element is one entry of an Overpass-style `elements` array: either a
// node (id, lat, lon) or a way (nodes, tags), per spec.md §4.2.
type Element struct {
	Type  string   `json:"type"`
	ID    int64    `json:"id"`
	Lat   *float64 `json:"lat,omitempty"`
	Lon   *float64 `json:"lon,omitempty"`
	Nodes []int64  `json:"nodes,omitempty"`
	Tags  Tags     `json:"tags,omitempty"`
}

// Document is the already-parsed node/way document the graph builder
// consumes — the contract the fetcher collaborator is expected to produce
// (spec.md §1, §6).
type Document struct {
	Elements []Element `json:"elements"`
}

var detailHighwayClasses = map[string][]string{
	"low":    {"primary", "secondary", "tertiary"},
	"medium": {"primary", "secondary", "tertiary", "residential", "living_street", "service", "unclassified"},
	"high":   {"primary", "secondary", "tertiary", "residential", "living_street", "service", "unclassified", "motorway", "trunk"},
}

// HighwayClassesForDetail returns the OSM highway classes the fetcher
// should query for at the given detail level, per spec.md §6. Unknown
// detail strings fall back to "medium".
func HighwayClassesForDetail(detail string) []string {
	if classes, ok := detailHighwayClasses[detail]; ok {
		return classes
	}
	return detailHighwayClasses["medium"]
}
