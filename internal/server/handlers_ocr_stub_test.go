//go:build !cgo || !tesseract

package server

import (
	"strings"
	"testing"

	"github.com/ironsheep/clock-reader-mcp/internal/ocr"
)

func TestHandleToolsCall_ClockDialNumeralsUnavailable(t *testing.T) {
	s := newTestServer(t, halfPastTwo())
	path := createTestImageFile(t, 200, 200)

	resp := callTool(t, s, "clock_dial_numerals", map[string]interface{}{"path": path})
	expectErrorCode(t, resp, -32000)
	if data, _ := resp.Error.Data.(string); !strings.Contains(data, ocr.ErrOCRUnavailable.Error()) {
		t.Errorf("data: got %v, want %q", resp.Error.Data, ocr.ErrOCRUnavailable)
	}
}
