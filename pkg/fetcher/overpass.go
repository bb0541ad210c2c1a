// Package fetcher is the external collaborator named out of core scope by
// spec.md §1: it turns a bounding box and a set of OSM highway classes into
// an already-parsed node/way document, over HTTP, with the 60-second
// timeout and empty-document-on-failure contract of spec.md §6/§7.
package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/examallot/router/pkg/osmparser"
)

// DefaultTimeout is the collaborator's enforced fetch timeout, per
// spec.md §5/§6.
const DefaultTimeout = 60 * time.Second

// BBox is the bounding box passed to the build operation, per spec.md §6.
type BBox struct {
	MinLat, MinLon, MaxLat, MaxLon float64
}

// Fetcher is the `fetch(bbox, detail) -> doc` contract spec.md §1 names.
type Fetcher interface {
	Fetch(ctx context.Context, bbox BBox, highwayTypes []string) (*osmparser.Document, error)
}

// OverpassFetcher queries an Overpass-API-compatible endpoint for raw
// node/way data within bbox, restricted to highwayTypes.
type OverpassFetcher struct {
	Endpoint string
	Client   *http.Client
	Log      *zap.Logger
}

func NewOverpassFetcher(endpoint string, log *zap.Logger) *OverpassFetcher {
	return &OverpassFetcher{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: DefaultTimeout},
		Log:      log,
	}
}

// Fetch builds an Overpass QL query restricted to bbox and highwayTypes and
// decodes the response into a Document. Any HTTP-status-based failure, or a
// context deadline, yields an empty document rather than an error — the
// graph builder's documented fallback trigger is "empty elements",
// per spec.md §6/§7, not a propagated error.
func (f *OverpassFetcher) Fetch(ctx context.Context, bbox BBox, highwayTypes []string) (*osmparser.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	query := buildQuery(bbox, highwayTypes)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.Endpoint, strings.NewReader(query))
	if err != nil {
		return &osmparser.Document{}, nil
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.Client.Do(req)
	if err != nil {
		if f.Log != nil {
			f.Log.Warn("overpass fetch failed, falling back to empty document", zap.Error(err))
		}
		return &osmparser.Document{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if f.Log != nil {
			f.Log.Warn("overpass fetch returned non-200, falling back to empty document",
				zap.Int("status", resp.StatusCode))
		}
		return &osmparser.Document{}, nil
	}

	var doc osmparser.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		if f.Log != nil {
			f.Log.Warn("overpass response decode failed, falling back to empty document", zap.Error(err))
		}
		return &osmparser.Document{}, nil
	}
	return &doc, nil
}

func buildQuery(bbox BBox, highwayTypes []string) string {
	var sb strings.Builder
	sb.WriteString("[out:json];way[\"highway\"~\"")
	sb.WriteString(strings.Join(highwayTypes, "|"))
	sb.WriteString("\"](")
	fmt.Fprintf(&sb, "%f,%f,%f,%f", bbox.MinLat, bbox.MinLon, bbox.MaxLat, bbox.MaxLon)
	sb.WriteString(");(._;>;);out body;")
	return sb.String()
}
