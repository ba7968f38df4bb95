package server

import (
	"encoding/json"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/ironsheep/phough-mcp/internal/detection"
	"github.com/ironsheep/phough-mcp/internal/hough"
	"github.com/ironsheep/phough-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_detect_lines").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn().Err(err).Str("tool", params.Name).Msg("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.logger.Debug().Str("tool", params.Name).Dur("elapsed", time.Since(start)).Msg("tool done")

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Inspection
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_measure_distance":
		return s.handleImageMeasureDistance(args)
	case "image_edge_detect":
		return s.handleImageEdgeDetect(args)

	// Line Detection
	case "image_detect_lines":
		return s.handleImageDetectLines(args)
	case "image_hough_accumulator":
		return s.handleImageHoughAccumulator(args)
	case "image_draw_lines":
		return s.handleImageDrawLines(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Inspection Handlers ===

type imageCropArgs struct {
	Path  string  `json:"path"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Crop(img, imaging.Region{X1: a.X1, Y1: a.Y1, X2: a.X2, Y2: a.Y2}, a.Scale)
}

type imageMeasureDistanceArgs struct {
	Path string `json:"path"`
	X1   int    `json:"x1"`
	Y1   int    `json:"y1"`
	X2   int    `json:"x2"`
	Y2   int    `json:"y2"`
}

func (s *Server) handleImageMeasureDistance(args json.RawMessage) (interface{}, error) {
	var a imageMeasureDistanceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.MeasureDistance(img, a.X1, a.Y1, a.X2, a.Y2)
}

type imageEdgeDetectArgs struct {
	Path          string `json:"path"`
	ThresholdLow  int    `json:"threshold_low"`
	ThresholdHigh int    `json:"threshold_high"`
}

func (s *Server) handleImageEdgeDetect(args json.RawMessage) (interface{}, error) {
	var a imageEdgeDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.ThresholdLow == 0 {
		a.ThresholdLow = s.cfg.CannyLow
	}
	if a.ThresholdHigh == 0 {
		a.ThresholdHigh = s.cfg.CannyHigh
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.EdgeDetect(img, a.ThresholdLow, a.ThresholdHigh)
}

// === Line Detection Handlers ===

// detectArgs are shared by every tool that runs the detector. Omitted
// fields keep the server defaults, so an explicit zero (max_gap, seed)
// is honoured.
type detectArgs struct {
	Path             string          `json:"path"`
	Rho              float64         `json:"rho"`
	ThetaDegrees     float64         `json:"theta_degrees"`
	Threshold        int             `json:"threshold"`
	MinLineLength    int             `json:"min_line_length"`
	MaxGap           int             `json:"max_gap"`
	MaxLines         int             `json:"max_lines"`
	Seed             uint64          `json:"seed"`
	CannyLow         int             `json:"canny_low"`
	CannyHigh        int             `json:"canny_high"`
	EdgesPrecomputed bool            `json:"edges_precomputed"`
	Region           *imaging.Region `json:"region,omitempty"`
}

func (s *Server) defaultDetectArgs() detectArgs {
	return detectArgs{
		Rho:           s.cfg.Rho,
		ThetaDegrees:  s.cfg.ThetaDegrees,
		Threshold:     s.cfg.Threshold,
		MinLineLength: s.cfg.MinLineLength,
		MaxGap:        s.cfg.MaxGap,
		MaxLines:      s.cfg.MaxLines,
		Seed:          s.cfg.Seed,
		CannyLow:      s.cfg.CannyLow,
		CannyHigh:     s.cfg.CannyHigh,
	}
}

func (a detectArgs) options(s *Server) detection.Options {
	logger := s.logger.With().Str("path", a.Path).Logger()
	return detection.Options{
		Params: hough.Params{
			Rho:           a.Rho,
			Theta:         a.ThetaDegrees * math.Pi / 180,
			Threshold:     a.Threshold,
			MinLineLength: a.MinLineLength,
			MaxGap:        a.MaxGap,
			MaxLines:      a.MaxLines,
			Seed:          a.Seed,
			Logger:        &logger,
		},
		CannyLow:         a.CannyLow,
		CannyHigh:        a.CannyHigh,
		EdgesPrecomputed: a.EdgesPrecomputed,
		Region:           a.Region,
	}
}

// runDetection loads the image named in a and runs the detector over it.
func (s *Server) runDetection(a detectArgs) (image.Image, *detection.Detection, error) {
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, nil, err
	}
	det, err := detection.Run(img, a.options(s))
	if err != nil {
		return nil, nil, err
	}
	return img, det, nil
}

func (s *Server) handleImageDetectLines(args json.RawMessage) (interface{}, error) {
	a := s.defaultDetectArgs()
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return detection.DetectLines(img, a.options(s))
}

// HoughAccumulatorResult is the rendered vote grid plus its summary.
type HoughAccumulatorResult struct {
	*imaging.ImageResult
	detection.AccumulatorSummary
}

type imageHoughAccumulatorArgs struct {
	detectArgs
	Gray  bool `json:"gray"`
	Scale int  `json:"scale"`
}

func (s *Server) handleImageHoughAccumulator(args json.RawMessage) (interface{}, error) {
	a := imageHoughAccumulatorArgs{detectArgs: s.defaultDetectArgs()}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	_, det, err := s.runDetection(a.detectArgs)
	if err != nil {
		return nil, err
	}

	rendered := imaging.RenderAccumulator(det.Accumulator, imaging.AccumulatorOptions{Gray: a.Gray, Scale: a.Scale})
	img, err := imaging.NewImageResult(rendered)
	if err != nil {
		return nil, fmt.Errorf("failed to encode accumulator: %w", err)
	}
	return &HoughAccumulatorResult{
		ImageResult:        img,
		AccumulatorSummary: detection.Summarize(det.Accumulator),
	}, nil
}

// DrawLinesResult is the source image with the detected segments drawn on it.
type DrawLinesResult struct {
	*imaging.ImageResult
	Count int `json:"count"`
}

type imageDrawLinesArgs struct {
	detectArgs
	Color     string  `json:"color"`
	Width     float64 `json:"width"`
	Labels    bool    `json:"labels"`
	ShowEdges bool    `json:"show_edges"`
}

func (s *Server) handleImageDrawLines(args json.RawMessage) (interface{}, error) {
	a := imageDrawLinesArgs{detectArgs: s.defaultDetectArgs()}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Color == "" {
		a.Color = "#FF0000"
	}
	src, det, err := s.runDetection(a.detectArgs)
	if err != nil {
		return nil, err
	}

	out := imaging.DrawSegments(src, det.Segments, imaging.OverlayOptions{
		Color:  a.Color,
		Width:  a.Width,
		Labels: a.Labels,
	})
	if a.ShowEdges {
		out = imaging.SideBySide(out, det.Edges, 10)
	}

	img, err := imaging.NewImageResult(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode overlay: %w", err)
	}
	return &DrawLinesResult{ImageResult: img, Count: len(det.Segments)}, nil
}
