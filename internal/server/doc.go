// Package server implements the MCP (Model Context Protocol) server for line
// detection.
//
// The server speaks JSON-RPC 2.0 over stdio:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Inspection:
//   - image_crop: Extract rectangular region
//   - image_measure_distance: Measure between points
//   - image_edge_detect: Canny edge mask
//
// Line Detection:
//   - image_detect_lines: Probabilistic Hough line segments
//   - image_hough_accumulator: Render the final vote accumulator
//   - image_draw_lines: Overlay detected segments on the image
//
// The detection tools share one parameter set (rho, theta_degrees,
// threshold, min_line_length, max_gap, max_lines, seed, canny_low,
// canny_high, edges_precomputed, region). Parameters a call omits take the
// values of the server's Config; explicit zeros are kept, so max_gap 0 and
// seed 0 mean exactly that.
//
// # Image Caching
//
// Loaded images are cached by path for the lifetime of the process, so
// repeated calls while tuning parameters skip disk I/O.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure), -32602 (malformed tools/call
//     params) or -32601 (unknown method)
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Logging
//
// Requests and tool timings are logged at debug level through the zerolog
// logger passed to New. Nothing is ever written to stdout except responses.
//
// # Usage
//
//	srv := server.New(server.DefaultConfig(), logger)
//	if err := srv.Run(); err != nil {
//	    logger.Fatal().Err(err).Msg("server error")
//	}
package server
