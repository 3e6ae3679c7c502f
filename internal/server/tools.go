package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Recoloring
		{
			Name:        "huey_palette",
			Description: "List the built-in color palette: every named adjustment with its hue (degrees), saturation (0-1) and brightness (percent).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"style": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"title", "lower"},
						"description": "Name style: title (Blue) as used by folder output, or lower (blue) as used by flat output. Default title",
						"default":     "title",
					},
				},
			},
		},
		{
			Name:        "huey_recolor",
			Description: "Recolor one image with an explicit hue, saturation and brightness. Transparent pixels are kept, lightness is preserved. Writes a PNG when output is set, otherwise returns the result as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the source image"),
					"hue": map[string]interface{}{
						"type":        "number",
						"description": "Target hue in degrees. Values outside 0-360 wrap around",
					},
					"saturation": map[string]interface{}{
						"type":        "number",
						"description": "Target saturation, 0 to 1",
						"minimum":     0,
						"maximum":     1,
					},
					"brightness": map[string]interface{}{
						"type":        "integer",
						"description": "Lightness change in percent, e.g. -20 darkens by a fifth. Default 0",
						"default":     0,
					},
					"overlay": pathProperty("Optional overlay image composited over the result, anchored top-left"),
					"output":  pathProperty("Optional PNG path to write. Parent folders are created"),
				},
				"required": []string{"path", "hue", "saturation"},
			},
		},
		{
			Name:        "huey_variants",
			Description: "Generate every palette variant of one image into a folder as <name>_<variant>.png files. Returns the path and dominant color of each variant.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":       pathProperty("Absolute path to the source image"),
					"overlay":    pathProperty("Optional overlay image composited over every variant"),
					"output_dir": pathProperty("Folder to write the variants to. Created if missing"),
					"style": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"title", "lower"},
						"description": "Variant name style in file names. Default lower",
						"default":     "lower",
					},
				},
				"required": []string{"path", "output_dir"},
			},
		},
		{
			Name:        "huey_batch",
			Description: "Recolor a whole folder of sprites. The tree layout reads <Category>/<Item>/<name>.png from Shirts and Pants folders and writes <Category>/<Item>/<name>_<Variant>/Shirt.png or Pants.png. The flat layout reads top-level PNGs and writes <name>_<variant>.png. An overlay.png next to a source is layered on every variant.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"input_dir":  pathProperty("Folder holding the source images"),
					"output_dir": pathProperty("Folder to write variants to. Created if missing"),
					"layout": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"tree", "flat"},
						"description": "Folder layout. Default tree",
						"default":     "tree",
					},
					"companions": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "File names next to each source to copy into every variant folder (tree layout only)",
					},
					"describe": map[string]interface{}{
						"type":        "boolean",
						"description": "Include each variant's dominant color in the report. Default false",
						"default":     false,
					},
				},
				"required": []string{"input_dir", "output_dir"},
			},
		},

		// Inspection
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and whether it has an alpha channel.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact color at a pixel, including HSL in the palette's units (hue in degrees, saturation and lightness 0-1).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_dominant_colors",
			Description: "Find the most common colors of an image by k-means clustering, with each color's share of the image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of colors to return. Default 5",
						"default":     5,
					},
					"method": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"dominantcolor", "kmeans"},
						"description": "Clustering method. kmeans ignores fully transparent pixels. Default dominantcolor",
						"default":     "dominantcolor",
					},
				},
				"required": []string{"path"},
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
