package server

import (
	"encoding/json"
	"fmt"
	"image"
	"log"
	"path/filepath"

	"github.com/ironsheep/huey/internal/batch"
	"github.com/ironsheep/huey/internal/imaging"
	"github.com/ironsheep/huey/internal/layout"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "huey_recolor", "image_load").
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
	if s.verbose {
		log.Printf("tool %s %s", params.Name, params.Arguments)
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
	// Recoloring
	case "huey_palette":
		return s.handlePalette(args)
	case "huey_recolor":
		return s.handleRecolor(args)
	case "huey_variants":
		return s.handleVariants(args)
	case "huey_batch":
		return s.handleBatch(args)

	// Inspection
	case "image_load":
		return s.handleImageLoad(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_dominant_colors":
		return s.handleImageDominantColors(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response. An empty data is omitted.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{Code: code, Message: message}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{JSONRPC: "2.0", ID: id, Error: e}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Recoloring Handlers ===

type paletteArgs struct {
	Style string `json:"style"`
}

type paletteResult struct {
	Style   string          `json:"style"`
	Entries imaging.Palette `json:"entries"`
}

func (s *Server) handlePalette(args json.RawMessage) (interface{}, error) {
	var a paletteArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}

	p := imaging.DefaultPalette()
	switch a.Style {
	case "", "title":
		a.Style = "title"
	case "lower":
		p = p.Lowercase()
	default:
		return nil, fmt.Errorf("unknown style: %s (want title or lower)", a.Style)
	}
	return &paletteResult{Style: a.Style, Entries: p}, nil
}

type recolorArgs struct {
	Path       string  `json:"path"`
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Brightness int     `json:"brightness"`
	Overlay    string  `json:"overlay"`
	Output     string  `json:"output"`
}

type recolorResult struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Dominant string `json:"dominant"`

	// Path is set when the result was written to disk.
	Path string `json:"path,omitempty"`

	// ImageBase64 and MimeType are set when no output path was given.
	ImageBase64 string `json:"image_base64,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
}

func (s *Server) handleRecolor(args json.RawMessage) (interface{}, error) {
	var a recolorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Saturation < 0 || a.Saturation > 1 {
		return nil, fmt.Errorf("saturation must be between 0 and 1, got %g", a.Saturation)
	}

	src, overlay, err := s.loadSourceAndOverlay(a.Path, a.Overlay)
	if err != nil {
		return nil, err
	}

	out := imaging.Transform(src, a.Hue, a.Saturation, a.Brightness)
	if overlay != nil {
		imaging.CompositeOver(out, overlay)
	}

	result := &recolorResult{
		Width:    out.Bounds().Dx(),
		Height:   out.Bounds().Dy(),
		Dominant: imaging.DominantHex(out),
	}

	if a.Output != "" {
		sink := batch.NewDirSink(filepath.Dir(a.Output))
		name := filepath.Base(a.Output)
		if err := sink.WriteImage(name, out); err != nil {
			return nil, err
		}
		result.Path = sink.Location(name)
		return result, nil
	}

	encoded, err := imaging.EncodePNGBase64(out)
	if err != nil {
		return nil, err
	}
	result.ImageBase64 = encoded
	result.MimeType = "image/png"
	return result, nil
}

type variantsArgs struct {
	Path      string `json:"path"`
	Overlay   string `json:"overlay"`
	OutputDir string `json:"output_dir"`
	Style     string `json:"style"`
}

type variantsResult struct {
	Source   string         `json:"source"`
	Variants []batch.Output `json:"variants"`
}

// handleVariants writes every palette variant of a single image into one
// folder, named the way the flat layout names them.
func (s *Server) handleVariants(args json.RawMessage) (interface{}, error) {
	var a variantsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.OutputDir == "" {
		return nil, fmt.Errorf("output_dir is required")
	}
	switch a.Style {
	case "", "lower", "title":
	default:
		return nil, fmt.Errorf("unknown style: %s (want lower or title)", a.Style)
	}

	flat := layout.Flat{}
	src, ok := flat.Accept(a.Path)
	if !ok {
		return nil, fmt.Errorf("%s is an overlay image, not a source", a.Path)
	}

	img, overlay, err := s.loadSourceAndOverlay(a.Path, a.Overlay)
	if err != nil {
		return nil, err
	}

	sink := batch.NewDirSink(a.OutputDir)
	result := &variantsResult{Source: a.Path, Variants: []batch.Output{}}

	err = imaging.EachVariant(img, overlay, imaging.DefaultPalette(), func(v imaging.Variant) error {
		name := flat.VariantName(v.Adjustment)
		if a.Style == "title" {
			name = v.Name()
		}
		rel := flat.Destination(src, name)
		if err := sink.WriteImage(rel, v.Image); err != nil {
			return err
		}
		result.Variants = append(result.Variants, batch.Output{
			Source:   a.Path,
			Variant:  name,
			Path:     sink.Location(rel),
			Dominant: imaging.DominantHex(v.Image),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type batchArgs struct {
	InputDir   string   `json:"input_dir"`
	OutputDir  string   `json:"output_dir"`
	Layout     string   `json:"layout"`
	Companions []string `json:"companions"`
	Describe   bool     `json:"describe"`
}

func (s *Server) handleBatch(args json.RawMessage) (interface{}, error) {
	var a batchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.InputDir == "" || a.OutputDir == "" {
		return nil, fmt.Errorf("input_dir and output_dir are required")
	}

	l, err := layout.ByName(a.Layout)
	if err != nil {
		return nil, err
	}

	// Each run decodes its overlays once per folder and then drops them.
	r := &batch.Runner{
		Layout:     l,
		Palette:    imaging.DefaultPalette(),
		Sink:       batch.NewDirSink(a.OutputDir),
		Cache:      imaging.NewImageCache(),
		Companions: a.Companions,
		Describe:   a.Describe,
	}
	return r.Run(a.InputDir)
}

// loadSourceAndOverlay loads a source image and, when overlayPath is set, its
// overlay. Sources are decoded on every call. Overlays go through the cache,
// which decodes them again once the file changes on disk.
func (s *Server) loadSourceAndOverlay(path, overlayPath string) (image.Image, image.Image, error) {
	src, err := imaging.Open(path)
	if err != nil {
		return nil, nil, err
	}
	if overlayPath == "" {
		return src, nil, nil
	}
	overlay, err := s.cache.Load(overlayPath)
	if err != nil {
		return nil, nil, fmt.Errorf("overlay: %w", err)
	}
	return src, overlay, nil
}

// === Inspection Handlers ===

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

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := imaging.Open(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type imageDominantColorsArgs struct {
	Path   string `json:"path"`
	Count  int    `json:"count"`
	Method string `json:"method"`
}

func (s *Server) handleImageDominantColors(args json.RawMessage) (interface{}, error) {
	var a imageDominantColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	img, err := imaging.Open(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.DominantColorsBy(img, a.Count, a.Method)
}
