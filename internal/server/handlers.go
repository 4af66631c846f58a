package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ironsheep/coloring-page-mcp/internal/imaging"
	"github.com/ironsheep/coloring-page-mcp/internal/session"
)

// defaultExportTimeout bounds how long coloring_page_export waits for a
// pending render.
const defaultExportTimeout = 5000 * time.Millisecond

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "coloring_page_open").
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

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Source images
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// One-shot conversion
	case "coloring_page_create":
		return s.handleColoringPageCreate(args)

	// Interactive session
	case "coloring_page_open":
		return s.handleColoringPageOpen(args)
	case "coloring_page_adjust":
		return s.handleColoringPageAdjust(args)
	case "coloring_page_status":
		return s.handleColoringPageStatus()
	case "coloring_page_export":
		return s.handleColoringPageExport(args)
	case "coloring_page_reset":
		return s.handleColoringPageReset()

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

// unmarshalArgs decodes tool arguments. Tools without required arguments may
// be called with none at all.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// === Source Image Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === One-shot Conversion Handler ===

type coloringPageCreateArgs struct {
	Path       string `json:"path"`
	Brightness int    `json:"brightness"`
	Contrast   int    `json:"contrast"`
	Invert     bool   `json:"invert"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleColoringPageCreate(args json.RawMessage) (interface{}, error) {
	var a coloringPageCreateArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	opts := imaging.RenderOptions{
		Tone:   imaging.Tone{Brightness: a.Brightness, Contrast: a.Contrast},
		Invert: a.Invert,
	}
	page, err := imaging.Render(imaging.Fit(img, s.cfg.MaxDimension), opts)
	if err != nil {
		return nil, err
	}

	result, err := imaging.NewColoringPageResult(page)
	if err != nil {
		return nil, err
	}

	if a.OutputPath != "" {
		if err := imaging.SavePNG(page, a.OutputPath); err != nil {
			return nil, err
		}
		result.SavedTo = a.OutputPath
	}
	return result, nil
}

// === Session Handlers ===

// statusResult is the session snapshot plus server-side bookkeeping.
type statusResult struct {
	session.Status
	Source       string `json:"source,omitempty"`
	CachedImages int    `json:"cached_images"`
}

func (s *Server) status() *statusResult {
	s.mu.Lock()
	source := s.source
	s.mu.Unlock()

	return &statusResult{
		Status:       s.conv.Snapshot(),
		Source:       source,
		CachedImages: s.cache.Len(),
	}
}

type coloringPageOpenArgs struct {
	Path   string `json:"path"`
	Reload bool   `json:"reload"`
}

type openResult struct {
	Path         string         `json:"path"`
	SourceWidth  int            `json:"source_width"`
	SourceHeight int            `json:"source_height"`
	Width        int            `json:"width"`
	Height       int            `json:"height"`
	Status       session.Status `json:"status"`
}

func (s *Server) handleColoringPageOpen(args json.RawMessage) (interface{}, error) {
	var a coloringPageOpenArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	if a.Reload {
		s.cache.Evict(a.Path)
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	fitted := imaging.Fit(img, s.cfg.MaxDimension)

	s.mu.Lock()
	s.source = a.Path
	s.mu.Unlock()
	s.conv.Open(fitted)

	return &openResult{
		Path:         a.Path,
		SourceWidth:  img.Bounds().Dx(),
		SourceHeight: img.Bounds().Dy(),
		Width:        fitted.Bounds().Dx(),
		Height:       fitted.Bounds().Dy(),
		Status:       s.conv.Snapshot(),
	}, nil
}

type coloringPageAdjustArgs struct {
	Brightness *int  `json:"brightness"`
	Contrast   *int  `json:"contrast"`
	Invert     *bool `json:"invert"`
}

func (s *Server) handleColoringPageAdjust(args json.RawMessage) (interface{}, error) {
	var a coloringPageAdjustArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Brightness == nil && a.Contrast == nil && a.Invert == nil {
		return nil, errors.New("at least one of brightness, contrast or invert is required")
	}

	err := s.conv.SetOptions(func(o *imaging.RenderOptions) {
		if a.Brightness != nil {
			o.Tone.Brightness = *a.Brightness
		}
		if a.Contrast != nil {
			o.Tone.Contrast = *a.Contrast
		}
		if a.Invert != nil {
			o.Invert = *a.Invert
		}
	})
	if err != nil {
		return nil, err
	}

	return s.status(), nil
}

func (s *Server) handleColoringPageStatus() (interface{}, error) {
	return s.status(), nil
}

type coloringPageExportArgs struct {
	OutputPath   string `json:"output_path"`
	TimeoutMs    *int   `json:"timeout_ms"`
	IncludeImage bool   `json:"include_image"`
}

func (s *Server) handleColoringPageExport(args json.RawMessage) (interface{}, error) {
	var a coloringPageExportArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	timeout := defaultExportTimeout
	if a.TimeoutMs != nil {
		if *a.TimeoutMs < 0 {
			return nil, fmt.Errorf("timeout_ms must not be negative, got %d", *a.TimeoutMs)
		}
		timeout = time.Duration(*a.TimeoutMs) * time.Millisecond
	}
	if a.OutputPath == "" {
		a.OutputPath = filepath.Join(s.cfg.OutputDir, imaging.DefaultFilename)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	res, err := s.conv.Wait(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("coloring page not ready after %v: %w", timeout, err)
		}
		return nil, err
	}

	if err := imaging.SavePNG(res.Page, a.OutputPath); err != nil {
		return nil, err
	}

	result, err := imaging.NewColoringPageResult(res.Page)
	if err != nil {
		return nil, err
	}
	result.SavedTo = a.OutputPath
	if !a.IncludeImage {
		result.ImageBase64 = ""
	}
	return result, nil
}

func (s *Server) handleColoringPageReset() (interface{}, error) {
	s.conv.Reset()
	s.cache.Clear()

	s.mu.Lock()
	s.source = ""
	s.mu.Unlock()

	return s.status(), nil
}
