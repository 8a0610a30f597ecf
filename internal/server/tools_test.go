package server

import (
	"testing"
)

func toolsByName() map[string]Tool {
	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}
	return toolMap
}

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"image_load",
		"image_dimensions",
		"clock_read",
		"clock_overlay",
		"clock_detect_face",
		"clock_hand_candidates",
		"clock_edge_map",
		"clock_dial_numerals",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("tool count: got %d, want %d", len(tools), len(expectedTools))
	}

	toolMap := toolsByName()
	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Name == "" {
				t.Error("Tool name is empty")
			}
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema == nil {
				t.Fatal("Tool InputSchema is nil")
			}
			if schemaType := tool.InputSchema["type"]; schemaType != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", schemaType)
			}
			if _, ok := tool.InputSchema["properties"].(map[string]interface{}); !ok {
				t.Error("InputSchema properties should be a map")
			}
		})
	}
}

func TestToolDefinitions_RequiredPath(t *testing.T) {
	toolMap := toolsByName()

	for _, name := range []string{"image_load", "image_dimensions"} {
		t.Run(name, func(t *testing.T) {
			required, ok := toolMap[name].InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			if len(required) != 1 || required[0] != "path" {
				t.Errorf("required: got %v, want [path]", required)
			}
		})
	}
}

func TestToolDefinitions_ClockImageSource(t *testing.T) {
	clockTools := []string{
		"clock_read",
		"clock_overlay",
		"clock_detect_face",
		"clock_hand_candidates",
		"clock_edge_map",
		"clock_dial_numerals",
	}
	toolMap := toolsByName()

	for _, name := range clockTools {
		t.Run(name, func(t *testing.T) {
			tool := toolMap[name]

			// Either source may be given, so neither can be required.
			if _, ok := tool.InputSchema["required"]; ok {
				t.Error("clock tools should not require a parameter")
			}

			props := tool.InputSchema["properties"].(map[string]interface{})
			for _, p := range []string{"path", "image_base64"} {
				if _, ok := props[p]; !ok {
					t.Errorf("missing '%s' property", p)
				}
			}
		})
	}
}

func TestToolDefinitions_OptionalFlags(t *testing.T) {
	tests := []struct {
		tool     string
		property string
		wantType string
	}{
		{"clock_overlay", "render", "boolean"},
		{"clock_hand_candidates", "include_segments", "boolean"},
		{"clock_dial_numerals", "language", "string"},
	}
	toolMap := toolsByName()

	for _, tt := range tests {
		t.Run(tt.tool+"/"+tt.property, func(t *testing.T) {
			props := toolMap[tt.tool].InputSchema["properties"].(map[string]interface{})
			prop, ok := props[tt.property].(map[string]interface{})
			if !ok {
				t.Fatalf("property %s missing", tt.property)
			}
			if prop["type"] != tt.wantType {
				t.Errorf("type: got %v, want %s", prop["type"], tt.wantType)
			}
		})
	}
}

func TestWithProperties_DoesNotShareMaps(t *testing.T) {
	a := withProperties(map[string]interface{}{"extra": true})
	b := imageSourceProperties()

	if _, ok := b["extra"]; ok {
		t.Error("withProperties leaked into the shared source properties")
	}
	if len(a) != len(b)+1 {
		t.Errorf("property count: got %d, want %d", len(a), len(b)+1)
	}
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer(t, halfPastTwo())
	resp := s.handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: 7, Method: "tools/list"})

	if resp.ID != 7 {
		t.Errorf("ID: got %v, want 7", resp.ID)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	tools, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(tools) != len(GetToolDefinitions()) {
		t.Errorf("tool count: got %d", len(tools))
	}
}
