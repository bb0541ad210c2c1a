package controllers

// --- build -----------------------------------------------------------

type centreRequest struct {
	CentreID            string  `json:"centre_id" validate:"required"`
	Lat                 float64 `json:"lat" validate:"min=-90,max=90"`
	Lon                 float64 `json:"lon" validate:"min=-180,max=180"`
	MaxCapacity         uint32  `json:"max_capacity" validate:"required"`
	HasWheelchairAccess bool    `json:"has_wheelchair_access"`
	IsFemaleOnly        bool    `json:"is_female_only"`
}

type buildRequest struct {
	MinLat      float64         `json:"min_lat" validate:"min=-90,max=90"`
	MinLon      float64         `json:"min_lon" validate:"min=-180,max=180"`
	MaxLat      float64         `json:"max_lat" validate:"min=-90,max=90"`
	MaxLon      float64         `json:"max_lon" validate:"min=-180,max=180"`
	GraphDetail string          `json:"graph_detail"`
	Centres     []centreRequest `json:"centres" validate:"dive"`
}

type buildTimingResponse struct {
	FetchOverpassMS      int64 `json:"fetch_overpass_ms"`
	BuildGraphMS         int64 `json:"build_graph_ms"`
	BuildKdtreeMS        int64 `json:"build_kdtree_ms"`
	DijkstraPrecomputeMS int64 `json:"dijkstra_precompute_ms"`
	TotalMS              int64 `json:"total_ms"`
}

type buildResponse struct {
	NodesCount int                 `json:"nodes_count"`
	EdgesCount int                 `json:"edges_count"`
	Timing     buildTimingResponse `json:"timing"`
}

// --- allot -------------------------------------------------------------

type studentRequest struct {
	StudentID string  `json:"student_id" validate:"required"`
	Lat       float64 `json:"lat" validate:"min=-90,max=90"`
	Lon       float64 `json:"lon" validate:"min=-180,max=180"`
	Category  string  `json:"category" validate:"required,oneof=general pwd female"`
}

type allotRequest struct {
	Students []studentRequest `json:"students" validate:"required,dive"`
}

type allotTimingResponse struct {
	SnapStudentsMS int64 `json:"snap_students_ms"`
	DijkstraMS     int64 `json:"dijkstra_ms"`
	AllotmentMS    int64 `json:"allotment_ms"`
	TotalMS        int64 `json:"total_ms"`
}

type allotResponse struct {
	Assignments    map[string]string             `json:"assignments"`
	DebugDistances map[string]map[string]float64 `json:"debug_distances"`
	Timing         allotTimingResponse           `json:"timing"`
}

// --- path ----------------------------------------------------------------

type pathTimingResponse struct {
	AstarMS int64 `json:"astar_ms"`
	TotalMS int64 `json:"total_ms"`
}

type pathResponse struct {
	Path            [][2]float64       `json:"path"`
	EncodedPolyline string             `json:"encoded_polyline,omitempty"`
	Timing          pathTimingResponse `json:"timing"`
}

// --- parallel-sssp --------------------------------------------------------

type parallelSSSPRequest struct {
	WorkflowName string `json:"workflow_name"`
	WorkflowType string `json:"workflow_type"`
	SaveToFiles  bool   `json:"save_to_files"`
	OutputDir    string `json:"output_dir"`
}

type centreSSSPResponse struct {
	CentreID       string `json:"centre_id"`
	StartNode      int64  `json:"start_node"`
	Success        bool   `json:"success"`
	ComputationMS  int64  `json:"computation_time_ms"`
	ReachableNodes int    `json:"reachable_nodes"`
}

type parallelSSSPResponse struct {
	Centres []centreSSSPResponse `json:"centres"`
	Timing  struct {
		ParallelExecutionMS int64 `json:"parallel_execution_ms"`
	} `json:"timing"`
	Speedup float64 `json:"speedup"`
}

// --- diagnostics -----------------------------------------------------------

type centreSummaryResponse struct {
	CentreID      string `json:"centre_id"`
	AssignedCount int    `json:"assigned_count"`
}

type studentDiagnosticResponse struct {
	StudentID      string             `json:"student_id"`
	SnapNodeID     int64              `json:"snap_node_id"`
	SnapDistanceM  float64            `json:"snap_distance_m"`
	AssignedCentre string             `json:"assigned_centre,omitempty"`
	AltDistancesM  map[string]float64 `json:"alt_distances_m"`
	ComponentID    int32              `json:"component_id"`
	ReachableCount int                `json:"reachable_count"`
	NearTie        bool               `json:"near_tie"`
}

type diagnosticsSummaryResponse struct {
	UnreachableCount int     `json:"unreachable_count"`
	LargeSnapCount   int     `json:"large_snap_count"`
	AvgSnapDistanceM float64 `json:"avg_snap_distance_m"`
}

type diagnosticsResponse struct {
	Centres  []centreSummaryResponse     `json:"centre_summary"`
	Students []studentDiagnosticResponse `json:"student_diagnostics"`
	Summary  diagnosticsSummaryResponse  `json:"summary"`
}

// --- shared ----------------------------------------------------------------

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type envelope map[string]interface{}
