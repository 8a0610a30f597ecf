// Package server implements the MCP (Model Context Protocol) server for reading
// analog clocks.
//
// This package provides a JSON-RPC 2.0 server that exposes the clock reading
// pipeline through the MCP protocol, so that MCP-compatible clients can ask
// for the time shown in a photo and inspect how it was derived.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
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
//   - image_load: Load image and get metadata, including the analysis size
//   - image_dimensions: Get width and height
//
// Clock Reading:
//   - clock_read: Read the time as HH:MM
//   - clock_overlay: Describe and optionally render the annotation overlay
//
// Pipeline Inspection:
//   - clock_detect_face: Circle candidates and the chosen face
//   - clock_hand_candidates: Raw segments, accepted candidates and clusters
//   - clock_edge_map: Edge map of the masked face
//   - clock_dial_numerals: OCR of the printed dial numbers
//
// Every clock_* tool takes the image either as a file path or as base64 data.
// Images are normalized to CLOCK_MCP_MAX_DIM on their longest side before
// analysis, and all returned coordinates refer to the normalized image.
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// Base64 uploads are not cached. The cache persists for the lifetime of the
// server process.
//
// # Error Handling
//
// A clock that cannot be read is not an error. Clock tools return a normal
// result whose status is one of OK, NoFaceDetected, NoHandsDetected,
// NoValidHandCandidates or ProcessingError, with a human-readable message.
// An unreadable or undecodable image is reported as ProcessingError.
//
// JSON-RPC error responses are used for everything else:
//   - code: -32602 for malformed or missing arguments
//   - code: -32000 for other tool failures, such as a missing file in image_load
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv, err := server.New(config.Load())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
