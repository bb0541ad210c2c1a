// Package controllers is the request surface's HTTP-facing layer,
// grounded on the teacher's pkg/http/router/controllers/routing.go: query
// parsing, go-playground/validator translation, envelope responses.
package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/examallot/router/pkg/datastructure"
	"github.com/examallot/router/pkg/fetcher"
	helper "github.com/examallot/router/pkg/http/router/routerhelper"
	"github.com/examallot/router/pkg/session"
)

type routingAPI struct {
	routingService RoutingService
	log            *zap.Logger
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	return &routingAPI{routingService: routingService, log: log}
}

// Routes registers every operation of spec.md §6 under group's prefix.
func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.POST("/build", api.build)
	group.POST("/allot", api.allot)
	group.GET("/path", api.path)
	group.POST("/parallel-sssp", api.parallelSSSP)
	group.GET("/diagnostics", api.diagnostics)
}

func (api *routingAPI) validate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	v := validator.New()
	if err := v.Struct(req); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(v, trans)
		vv := translateError(err, trans)
		vvString := make([]string, 0, len(vv))
		for _, e := range vv {
			vvString = append(vvString, e.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return false
	}
	return true
}

// build handles spec.md §6's `build` operation: fetch OSM doc, build the
// graph/index, snap centres, run the parallel SSSP precompute.
func (api *routingAPI) build(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req buildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	defer r.Body.Close()

	if !api.validate(w, r, req) {
		return
	}

	detail := req.GraphDetail
	if detail == "" {
		detail = "medium"
	}

	centres := make([]session.CentreInput, 0, len(req.Centres))
	for _, c := range req.Centres {
		centres = append(centres, session.CentreInput{
			CentreID:            c.CentreID,
			Lat:                 c.Lat,
			Lon:                 c.Lon,
			MaxCapacity:         c.MaxCapacity,
			HasWheelchairAccess: c.HasWheelchairAccess,
			IsFemaleOnly:        c.IsFemaleOnly,
		})
	}

	bbox := fetcher.BBox{MinLat: req.MinLat, MinLon: req.MinLon, MaxLat: req.MaxLat, MaxLon: req.MaxLon}
	result, err := api.routingService.Build(r.Context(), bbox, detail, centres)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	resp := buildResponse{
		NodesCount: result.NodesCount,
		EdgesCount: result.EdgesCount,
		Timing: buildTimingResponse{
			FetchOverpassMS:      result.Timing.FetchMS,
			BuildGraphMS:         result.Timing.BuildGraphMS,
			BuildKdtreeMS:        result.Timing.BuildKdTreeMS,
			DijkstraPrecomputeMS: result.Timing.DijkstraPrecomputeMS,
			TotalMS:              result.Timing.TotalMS,
		},
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"status": "success", "data": resp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// allot handles spec.md §6's `allot` operation.
func (api *routingAPI) allot(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req allotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	defer r.Body.Close()

	if !api.validate(w, r, req) {
		return
	}

	students := make([]session.StudentInput, 0, len(req.Students))
	for _, s := range req.Students {
		students = append(students, session.StudentInput{
			StudentID: s.StudentID,
			Lat:       s.Lat,
			Lon:       s.Lon,
			Category:  datastructure.Category(s.Category),
		})
	}

	result, err := api.routingService.Allot(students)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	resp := allotResponse{
		Assignments:    result.Assignments,
		DebugDistances: result.DebugDistances,
		Timing: allotTimingResponse{
			SnapStudentsMS: result.Timing.SnapStudentsMS,
			DijkstraMS:     result.Timing.DijkstraMS,
			AllotmentMS:    result.Timing.AllotmentMS,
			TotalMS:        result.Timing.TotalMS,
		},
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"status": "success", "data": resp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// path handles spec.md §6's `path` operation: either node-id pairs or
// coordinate pairs, via the query parameters it documents.
func (api *routingAPI) path(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()

	var (
		result session.PathResult
		err    error
	)

	if nodeStr, centreStr := q.Get("student_node_id"), q.Get("centre_node_id"); nodeStr != "" && centreStr != "" {
		studentNode, perr := strconv.ParseInt(nodeStr, 10, 64)
		if perr != nil {
			api.BadRequestResponse(w, r, errors.New("student_node_id must be a valid integer"))
			return
		}
		centreNode, perr := strconv.ParseInt(centreStr, 10, 64)
		if perr != nil {
			api.BadRequestResponse(w, r, errors.New("centre_node_id must be a valid integer"))
			return
		}
		result, err = api.routingService.PathByNodes(datastructure.NodeID(studentNode), datastructure.NodeID(centreNode))
	} else {
		fields := []string{"student_lat", "student_lon", "centre_lat", "centre_lon"}
		vals := make(map[string]float64, 4)
		for _, f := range fields {
			v, perr := strconv.ParseFloat(q.Get(f), 64)
			if perr != nil {
				api.BadRequestResponse(w, r, fmt.Errorf("%s is required and must be a valid float", f))
				return
			}
			vals[f] = v
		}
		result, err = api.routingService.PathByCoordinates(vals["student_lat"], vals["student_lon"], vals["centre_lat"], vals["centre_lon"])
	}

	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	resp := pathResponse{
		Path:            result.Path,
		EncodedPolyline: result.EncodedPolyline,
		Timing: pathTimingResponse{
			AstarMS: result.Timing.AstarMS,
			TotalMS: result.Timing.TotalMS,
		},
	}
	if result.Path == nil {
		resp.Path = [][2]float64{}
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"status": "success", "data": resp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// parallelSSSP handles spec.md §6's `parallel-sssp` diagnostic operation.
func (api *routingAPI) parallelSSSP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req parallelSSSPRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.BadRequestResponse(w, r, err)
			return
		}
		defer r.Body.Close()
	}

	result, err := api.routingService.ParallelSSSP()
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	resp := parallelSSSPResponse{Speedup: result.Speedup}
	resp.Timing.ParallelExecutionMS = result.ParallelWallClockMS
	for _, c := range result.Centres {
		resp.Centres = append(resp.Centres, centreSSSPResponse{
			CentreID:       c.CentreID,
			StartNode:      c.StartNode,
			Success:        c.Success,
			ComputationMS:  c.ComputationMS,
			ReachableNodes: c.ReachableNodes,
		})
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"status": "success", "data": resp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// diagnostics handles spec.md §6's `diagnostics` operation.
func (api *routingAPI) diagnostics(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !api.routingService.HasGraph() {
		api.BadRequestResponse(w, r, errors.New("diagnostics requested before a successful build"))
		return
	}

	report := api.routingService.Diagnostics()

	resp := diagnosticsResponse{
		Summary: diagnosticsSummaryResponse{
			UnreachableCount: report.Summary.UnreachableCount,
			LargeSnapCount:   report.Summary.LargeSnapCount,
			AvgSnapDistanceM: report.Summary.AvgSnapDistanceM,
		},
	}
	for _, c := range report.Centres {
		resp.Centres = append(resp.Centres, centreSummaryResponse{CentreID: c.CentreID, AssignedCount: c.AssignedCount})
	}
	for _, s := range report.Students {
		resp.Students = append(resp.Students, studentDiagnosticResponse{
			StudentID:      s.StudentID,
			SnapNodeID:     int64(s.SnapNodeID),
			SnapDistanceM:  s.SnapDistanceM,
			AssignedCentre: s.AssignedCentre,
			AltDistancesM:  s.AltDistancesM,
			ComponentID:    s.ComponentID,
			ReachableCount: s.ReachableCount,
			NearTie:        s.NearTie,
		})
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"status": "success", "data": resp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}
