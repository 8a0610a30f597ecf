package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"
	"strings"
	"time"

	"github.com/ironsheep/clock-reader-mcp/internal/clock"
	"github.com/ironsheep/clock-reader-mcp/internal/imaging"
	"github.com/ironsheep/clock-reader-mcp/internal/ocr"
	"github.com/ironsheep/clock-reader-mcp/internal/render"
)

// errInvalidArgs marks argument errors, which are reported as -32602.
var errInvalidArgs = errors.New("invalid arguments")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "clock_read").
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
// Argument errors return -32602; other tool execution errors return -32000.
// Clock analysis failures are not errors: they are results with a status.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if s.cfg.Debug() {
		log.Printf("tool %s finished in %s (err=%v)", params.Name, time.Since(start).Round(time.Millisecond), err)
	}
	if err != nil {
		if errors.Is(err, errInvalidArgs) {
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

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
//
// Each clock tool handler:
//  1. Unmarshals arguments from JSON
//  2. Loads the image from the cache or decodes the upload
//  3. Normalizes and preprocesses it
//  4. Runs the analyzer
//  5. Shapes the outcome into a status-carrying result
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Clock Reading
	case "clock_read":
		return s.handleClockRead(args)
	case "clock_overlay":
		return s.handleClockOverlay(args)

	// Pipeline Inspection
	case "clock_detect_face":
		return s.handleClockDetectFace(args)
	case "clock_hand_candidates":
		return s.handleClockHandCandidates(args)
	case "clock_edge_map":
		return s.handleClockEdgeMap(args)
	case "clock_dial_numerals":
		return s.handleClockDialNumerals(args)

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

// unmarshalArgs decodes tool arguments, treating a missing object as empty.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArgs, err)
	}
	return nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("%w: path is required", errInvalidArgs)
	}
	return imaging.LoadImageInfo(s.cache, a.Path, s.cfg.MaxDimension)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("%w: path is required", errInvalidArgs)
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	return &DimensionsResult{Width: b.Dx(), Height: b.Dy()}, nil
}

// === Clock Handlers ===

type imageSourceArgs struct {
	Path        string `json:"path"`
	ImageBase64 string `json:"image_base64"`
}

func (a imageSourceArgs) validate() error {
	switch {
	case a.Path == "" && a.ImageBase64 == "":
		return fmt.Errorf("%w: one of path or image_base64 is required", errInvalidArgs)
	case a.Path != "" && a.ImageBase64 != "":
		return fmt.Errorf("%w: path and image_base64 are mutually exclusive", errInvalidArgs)
	}
	return nil
}

// prepared is an image ready for analysis.
type prepared struct {
	// color is the normalized image all coordinates refer to.
	color *image.NRGBA
	gray  *image.Gray
}

// prepare acquires, normalizes and preprocesses the source image.
func (s *Server) prepare(a imageSourceArgs) (*prepared, error) {
	var (
		img image.Image
		err error
	)
	if a.Path != "" {
		img, err = s.cache.Load(a.Path)
	} else {
		img, err = imaging.DecodeBase64(a.ImageBase64)
	}
	if err != nil {
		return nil, err
	}

	norm := imaging.Normalize(img, s.cfg.MaxDimension)
	return &prepared{color: norm, gray: imaging.Preprocess(norm)}, nil
}

// StatusResult is embedded in every clock tool result.
type StatusResult struct {
	Status  clock.Status `json:"status"`
	Message string       `json:"message"`
}

func statusOf(err error) StatusResult {
	st := clock.StatusOf(err)
	msg := st.Message()
	if st == clock.StatusProcessingError && err != nil {
		var f *clock.Failure
		cause := err
		if errors.As(err, &f) && f.Err != nil {
			cause = f.Err
		}
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return StatusResult{Status: st, Message: msg}
}

// analysis is the outcome of running the pipeline on one tool call's image.
type analysis struct {
	// img is nil when the image could not be acquired.
	img  *prepared
	insp *clock.Inspection

	// err is the analysis failure, nil on success. Acquisition failures are
	// reported here as StatusProcessingError.
	err error
}

// inspect prepares the image and runs the pipeline. Only argument errors are
// returned; everything else is folded into the analysis.
func (s *Server) inspect(args json.RawMessage) (*analysis, error) {
	var a imageSourceArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	p, err := s.prepare(a)
	if err != nil {
		if s.cfg.Debug() {
			log.Printf("image acquisition failed: %v", err)
		}
		return &analysis{
			insp: &clock.Inspection{},
			err:  &clock.Failure{Status: clock.StatusProcessingError, Err: err},
		}, nil
	}
	prepTime := time.Since(start)

	insp, analysisErr := s.analyzer.Inspect(context.Background(), p.gray)
	if s.cfg.Debug() {
		b := p.gray.Bounds()
		log.Printf("analysed %dx%d in %s (prep %s): circles=%d segments=%d candidates=%d fallback=%v clusters=%d status=%s",
			b.Dx(), b.Dy(), time.Since(start).Round(time.Millisecond), prepTime.Round(time.Millisecond),
			len(insp.Circles), len(insp.Segments), len(insp.Candidates), insp.UsedFallback, len(insp.Clusters),
			clock.StatusOf(analysisErr))
	}
	return &analysis{img: p, insp: insp, err: analysisErr}, nil
}

// ReadResult is the clock_read result.
type ReadResult struct {
	StatusResult

	// Time is the reading as zero-padded HH:MM.
	Time    string         `json:"time,omitempty"`
	Reading *clock.Reading `json:"reading,omitempty"`
}

func (s *Server) handleClockRead(args json.RawMessage) (interface{}, error) {
	an, err := s.inspect(args)
	if err != nil {
		return nil, err
	}

	result := &ReadResult{StatusResult: statusOf(an.err)}
	if an.err == nil {
		result.Time = an.insp.Reading.String()
		result.Reading = an.insp.Reading
	}
	return result, nil
}

type clockOverlayArgs struct {
	Render *bool `json:"render"`
}

// OverlayResult is the clock_overlay result.
type OverlayResult struct {
	StatusResult

	Time       string            `json:"time,omitempty"`
	Width      int               `json:"width,omitempty"`
	Height     int               `json:"height,omitempty"`
	Primitives []clock.Primitive `json:"primitives,omitempty"`
	Image      *render.Result    `json:"image,omitempty"`
}

func (s *Server) handleClockOverlay(args json.RawMessage) (interface{}, error) {
	var a clockOverlayArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	an, err := s.inspect(args)
	if err != nil {
		return nil, err
	}

	result := &OverlayResult{StatusResult: statusOf(an.err)}
	if an.err != nil {
		return result, nil
	}

	r := an.insp.Reading
	result.Time = r.String()
	result.Width = an.img.color.Bounds().Dx()
	result.Height = an.img.color.Bounds().Dy()
	result.Primitives = clock.DescribeOverlay(r)

	if a.Render == nil || *a.Render {
		img, err := render.Overlay(an.img.color, result.Primitives, overlayLabel(r))
		if err != nil {
			return nil, err
		}
		result.Image = img
	}
	return result, nil
}

func overlayLabel(r *clock.Reading) string {
	var notes []string
	if r.HourEstimated {
		notes = append(notes, "hour estimated")
	}
	if r.UsedFallback {
		notes = append(notes, "fallback")
	}
	if len(notes) == 0 {
		return r.String()
	}
	return fmt.Sprintf("%s (%s)", r, strings.Join(notes, ", "))
}

// FaceResult is the clock_detect_face result.
type FaceResult struct {
	StatusResult

	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Circles []clock.Circle `json:"circles"`
	Face    *clock.Circle  `json:"face,omitempty"`
}

func (s *Server) handleClockDetectFace(args json.RawMessage) (interface{}, error) {
	an, err := s.inspect(args)
	if err != nil {
		return nil, err
	}

	result := &FaceResult{Circles: an.insp.Circles, Face: an.insp.Face}
	if result.Circles == nil {
		result.Circles = []clock.Circle{}
	}
	// Later stages failing does not make the face detection fail.
	if an.insp.Face != nil {
		result.StatusResult = statusOf(nil)
	} else {
		result.StatusResult = statusOf(an.err)
	}
	if an.img != nil {
		result.Width = an.img.color.Bounds().Dx()
		result.Height = an.img.color.Bounds().Dy()
	}
	return result, nil
}

type handCandidatesArgs struct {
	IncludeSegments bool `json:"include_segments"`
}

// HandCandidatesResult is the clock_hand_candidates result.
type HandCandidatesResult struct {
	StatusResult

	Face         *clock.Circle         `json:"face,omitempty"`
	SegmentCount int                   `json:"segment_count"`
	Segments     []clock.Segment       `json:"segments,omitempty"`
	Candidates   []clock.HandCandidate `json:"candidates"`
	UsedFallback bool                  `json:"used_fallback"`
	Band         *clock.Band           `json:"band,omitempty"`
	Clusters     []clock.Cluster       `json:"clusters"`
	Reading      *clock.Reading        `json:"reading,omitempty"`
}

func (s *Server) handleClockHandCandidates(args json.RawMessage) (interface{}, error) {
	var a handCandidatesArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	an, err := s.inspect(args)
	if err != nil {
		return nil, err
	}

	insp := an.insp
	result := &HandCandidatesResult{
		StatusResult: statusOf(an.err),
		Face:         insp.Face,
		SegmentCount: len(insp.Segments),
		Candidates:   insp.Candidates,
		UsedFallback: insp.UsedFallback,
		Band:         insp.Band,
		Clusters:     insp.Clusters,
		Reading:      insp.Reading,
	}
	if a.IncludeSegments {
		result.Segments = insp.Segments
	}
	if result.Candidates == nil {
		result.Candidates = []clock.HandCandidate{}
	}
	if result.Clusters == nil {
		result.Clusters = []clock.Cluster{}
	}
	return result, nil
}

// EdgeMapResult is the clock_edge_map result.
type EdgeMapResult struct {
	StatusResult

	Face  *clock.Circle             `json:"face,omitempty"`
	Edges *imaging.EdgeDetectResult `json:"edges,omitempty"`
}

func (s *Server) handleClockEdgeMap(args json.RawMessage) (interface{}, error) {
	an, err := s.inspect(args)
	if err != nil {
		return nil, err
	}

	result := &EdgeMapResult{Face: an.insp.Face}
	if an.insp.Edges == nil {
		result.StatusResult = statusOf(an.err)
		return result, nil
	}

	// The edge map exists once the face is found; later failures do not matter here.
	result.StatusResult = statusOf(nil)
	result.Edges, err = imaging.EncodeEdges(an.insp.Edges)
	if err != nil {
		return nil, err
	}
	return result, nil
}

type dialNumeralsArgs struct {
	Language string `json:"language"`
}

// DialNumeralsResult is the clock_dial_numerals result.
type DialNumeralsResult struct {
	StatusResult

	Face     *clock.Circle       `json:"face,omitempty"`
	Numerals *ocr.NumeralsResult `json:"numerals,omitempty"`
}

func (s *Server) handleClockDialNumerals(args json.RawMessage) (interface{}, error) {
	var a dialNumeralsArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	lang := a.Language
	if lang == "" {
		lang = s.cfg.OCRLanguage
	}

	an, err := s.inspect(args)
	if err != nil {
		return nil, err
	}

	result := &DialNumeralsResult{Face: an.insp.Face}
	if an.insp.Face == nil {
		result.StatusResult = statusOf(an.err)
		return result, nil
	}

	result.StatusResult = statusOf(nil)
	result.Numerals, err = ocr.ReadDialNumerals(an.img.color, *an.insp.Face, lang)
	if err != nil {
		return nil, err
	}
	return result, nil
}
