package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// imageSourceProperties are accepted by every clock_* tool. Exactly one of
// path and image_base64 must be given.
func imageSourceProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the image file (PNG, JPEG or GIF)",
		},
		"image_base64": map[string]interface{}{
			"type":        "string",
			"description": "Base64-encoded image data, optionally as a data URL. Used when path is not given",
		},
	}
}

// withProperties returns the image source properties plus extra.
func withProperties(extra map[string]interface{}) map[string]interface{} {
	props := imageSourceProperties()
	for k, v := range extra {
		props[k] = v
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, and the size it will be analysed at.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
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
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Clock Reading
		{
			Name: "clock_read",
			Description: "Read the time shown on an analog clock. Returns a status (OK, NoFaceDetected, NoHandsDetected, " +
				"NoValidHandCandidates, ProcessingError) and, on success, the time as HH:MM with the detected face and hands. " +
				"hour_estimated is true when no hour hand was found and the hour was derived from the minute hand.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": imageSourceProperties(),
			},
		},
		{
			Name: "clock_overlay",
			Description: "Read the clock and describe an annotation overlay: the face circle, a line per detected hand, " +
				"and a centre marker. Coordinates are in the analysed image. Optionally renders the overlay as a base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(map[string]interface{}{
					"render": map[string]interface{}{
						"type":        "boolean",
						"description": "Render the overlay onto the analysed image. Default true",
						"default":     true,
					},
				}),
			},
		},

		// Pipeline Inspection
		{
			Name:        "clock_detect_face",
			Description: "Detect circle candidates and report which one was chosen as the clock face (the largest).",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": imageSourceProperties(),
			},
		},
		{
			Name: "clock_hand_candidates",
			Description: "Debug the hand detector: raw line segments, segments accepted as hand candidates, " +
				"which threshold band accepted them, and the angular clusters.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(map[string]interface{}{
					"include_segments": map[string]interface{}{
						"type":        "boolean",
						"description": "Include every raw segment, not just the count. Default false",
						"default":     false,
					},
				}),
			},
		},
		{
			Name:        "clock_edge_map",
			Description: "Return the edge map of the masked clock face as a base64 PNG. White pixels are edges.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": imageSourceProperties(),
			},
		},
		{
			Name: "clock_dial_numerals",
			Description: "Read the printed numerals (1-12) inside the clock face with OCR. Useful to confirm that the detected " +
				"circle is a dial. Requires a server built with Tesseract support (-tags tesseract).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(map[string]interface{}{
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code. Defaults to the server setting (eng)",
					},
				}),
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
			"tools": GetToolDefinitions(),
		},
	}
}
