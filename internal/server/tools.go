package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// detectProperties are the parameters shared by the line detection tools.
// Defaults come from the server configuration.
func (c Config) detectProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty(),
		"rho": map[string]interface{}{
			"type":        "number",
			"description": "Distance resolution of the accumulator in pixels",
			"default":     c.Rho,
		},
		"theta_degrees": map[string]interface{}{
			"type":        "number",
			"description": "Angle resolution of the accumulator in degrees",
			"default":     c.ThetaDegrees,
		},
		"threshold": map[string]interface{}{
			"type":        "integer",
			"description": "Minimum votes an orientation needs before a line is traced",
			"default":     c.Threshold,
		},
		"min_line_length": map[string]interface{}{
			"type":        "integer",
			"description": "Minimum segment extent along x or y in pixels",
			"default":     c.MinLineLength,
		},
		"max_gap": map[string]interface{}{
			"type":        "integer",
			"description": "Longest run of missing edge pixels bridged while tracing",
			"default":     c.MaxGap,
		},
		"max_lines": map[string]interface{}{
			"type":        "integer",
			"description": "Stop after this many segments. 0 means no limit",
			"default":     c.MaxLines,
		},
		"seed": map[string]interface{}{
			"type":        "integer",
			"description": "Random seed; the same seed gives the same result",
			"default":     c.Seed,
		},
		"canny_low": map[string]interface{}{
			"type":        "integer",
			"description": "Canny hysteresis low threshold",
			"default":     c.CannyLow,
		},
		"canny_high": map[string]interface{}{
			"type":        "integer",
			"description": "Canny hysteresis high threshold",
			"default":     c.CannyHigh,
		},
		"edges_precomputed": map[string]interface{}{
			"type":        "boolean",
			"description": "Treat the image as an edge mask (white on black) instead of running Canny",
			"default":     false,
		},
		"region": map[string]interface{}{
			"type":        "object",
			"description": "Optional region to restrict detection to; results stay in image coordinates",
			"properties": map[string]interface{}{
				"x1": map[string]interface{}{"type": "integer"},
				"y1": map[string]interface{}{"type": "integer"},
				"x2": map[string]interface{}{"type": "integer"},
				"y2": map[string]interface{}{"type": "integer"},
			},
			"required": []string{"x1", "y1", "x2", "y2"},
		},
	}
}

// GetToolDefinitions returns all available tools with defaults taken from cfg.
func GetToolDefinitions(cfg Config) []Tool {
	accumulatorProps := cfg.detectProperties()
	accumulatorProps["gray"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Render raw vote counts saturated at 255 instead of a heat map",
		"default":     false,
	}
	accumulatorProps["scale"] = map[string]interface{}{
		"type":        "integer",
		"description": "Enlarge the grid by this factor",
		"default":     1,
	}

	drawProps := cfg.detectProperties()
	drawProps["color"] = map[string]interface{}{
		"type":        "string",
		"description": "Line color as hex (e.g., '#FF0000' or '#FF000080')",
		"default":     "#FF0000",
	}
	drawProps["width"] = map[string]interface{}{
		"type":        "number",
		"description": "Stroke width in pixels",
		"default":     1.0,
	}
	drawProps["labels"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Label each segment with its index in the detection order",
		"default":     false,
	}
	drawProps["show_edges"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Place the edge mask next to the overlay",
		"default":     false,
	}

	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and whether it is single-channel (usable directly as an edge mask).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Inspection
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region from an image and return it as base64-encoded PNG. Use this to look at an area before restricting detection to it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "image_measure_distance",
			Description: "Measure the distance and angle between two points, e.g. the endpoints of a detected line.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x1":   map[string]interface{}{"type": "integer", "description": "First point X"},
					"y1":   map[string]interface{}{"type": "integer", "description": "First point Y"},
					"x2":   map[string]interface{}{"type": "integer", "description": "Second point X"},
					"y2":   map[string]interface{}{"type": "integer", "description": "Second point Y"},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "image_edge_detect",
			Description: "Run Canny edge detection and return the binary edge mask the line detector works on, as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"threshold_low": map[string]interface{}{
						"type":        "integer",
						"description": "Low threshold for hysteresis",
						"default":     cfg.CannyLow,
					},
					"threshold_high": map[string]interface{}{
						"type":        "integer",
						"description": "High threshold for hysteresis",
						"default":     cfg.CannyHigh,
					},
				},
				"required": []string{"path"},
			},
		},

		// Line Detection
		{
			Name:        "image_detect_lines",
			Description: "Detect straight line segments with the progressive probabilistic Hough transform. Returns each segment's endpoints, length, angle, votes and color, plus a summary of the vote accumulator and run statistics.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": cfg.detectProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_hough_accumulator",
			Description: "Run line detection and return the final (angle x distance) vote accumulator as a base64-encoded PNG. Rows are angle bins, columns distance bins.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": accumulatorProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_draw_lines",
			Description: "Run line detection and return the image with the detected segments drawn on it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": drawProps,
				"required":   []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(s.cfg),
		},
	}
}
