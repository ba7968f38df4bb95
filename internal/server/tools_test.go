package server

import (
	"fmt"
	"testing"
)

var expectedTools = []string{
	"image_load",
	"image_dimensions",
	"image_crop",
	"image_measure_distance",
	"image_edge_detect",
	"image_detect_lines",
	"image_hough_accumulator",
	"image_draw_lines",
}

func toolsByName(cfg Config) map[string]Tool {
	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions(cfg) {
		toolMap[tool.Name] = tool
	}
	return toolMap
}

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions(DefaultConfig())
	if len(tools) != len(expectedTools) {
		t.Errorf("tool count: got %d, want %d", len(tools), len(expectedTools))
	}

	toolMap := toolsByName(DefaultConfig())
	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions(DefaultConfig()) {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}
			if _, ok := tool.InputSchema["properties"].(map[string]interface{}); !ok {
				t.Error("InputSchema properties should be a map")
			}

			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			hasPath := false
			for _, r := range required {
				if r == "path" {
					hasPath = true
				}
			}
			if !hasPath {
				t.Error("Tool should require 'path' parameter")
			}
		})
	}
}

func TestToolDefinitions_DetectionParameters(t *testing.T) {
	toolMap := toolsByName(DefaultConfig())
	shared := []string{
		"rho", "theta_degrees", "threshold", "min_line_length", "max_gap",
		"max_lines", "seed", "canny_low", "canny_high", "edges_precomputed", "region",
	}

	for _, name := range []string{"image_detect_lines", "image_hough_accumulator", "image_draw_lines"} {
		t.Run(name, func(t *testing.T) {
			props := toolMap[name].InputSchema["properties"].(map[string]interface{})
			for _, p := range shared {
				if _, ok := props[p]; !ok {
					t.Errorf("missing parameter %s", p)
				}
			}
		})
	}

	accProps := toolMap["image_hough_accumulator"].InputSchema["properties"].(map[string]interface{})
	if _, ok := accProps["gray"]; !ok {
		t.Error("image_hough_accumulator should accept 'gray'")
	}
	lineProps := toolMap["image_detect_lines"].InputSchema["properties"].(map[string]interface{})
	if _, ok := lineProps["gray"]; ok {
		t.Error("image_detect_lines must not share the accumulator's extra parameters")
	}
}

func TestToolDefinitions_DefaultsFollowConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Threshold = 77
	cfg.Seed = 9
	cfg.CannyLow = 40

	toolDefaults := map[string]map[string]interface{}{
		"image_crop":         {"scale": 1.0},
		"image_edge_detect":  {"threshold_low": 40, "threshold_high": 300},
		"image_detect_lines": {"rho": 1.0, "theta_degrees": 1.0, "threshold": 77, "min_line_length": 10, "max_gap": 10, "max_lines": 0, "seed": 9},
		"image_draw_lines":   {"color": "#FF0000", "labels": false, "canny_low": 40},
	}

	toolMap := toolsByName(cfg)
	for toolName, expectedDefaults := range toolDefaults {
		props, ok := toolMap[toolName].InputSchema["properties"].(map[string]interface{})
		if !ok {
			t.Errorf("%s: properties should be a map", toolName)
			continue
		}

		for paramName, expected := range expectedDefaults {
			param, ok := props[paramName].(map[string]interface{})
			if !ok {
				t.Errorf("%s.%s: parameter not found or not a map", toolName, paramName)
				continue
			}
			actual, ok := param["default"]
			if !ok {
				t.Errorf("%s.%s: missing default value", toolName, paramName)
				continue
			}
			// numeric defaults mix int, uint64 and float64
			if fmt.Sprint(actual) != fmt.Sprint(expected) {
				t.Errorf("%s.%s: default got %v, want %v", toolName, paramName, actual, expected)
			}
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer()
	resp := s.handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: 1})

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(toolsList) != len(expectedTools) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(expectedTools))
	}
}
