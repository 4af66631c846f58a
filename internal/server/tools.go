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

func toneProperty(name string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": name + " adjustment applied before edge detection, -100 to 100. Default 0",
		"minimum":     -100,
		"maximum":     100,
		"default":     0,
	}
}

func invertProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "boolean",
		"description": "Draw edges black on white instead of white on black. Default false",
		"default":     false,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Source images
		{
			Name:        "image_load",
			Description: "Load a PNG, JPEG or WebP image and return its dimensions, format and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
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
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},

		// One-shot conversion
		{
			Name:        "coloring_page_create",
			Description: "Convert a photo into a black-and-white coloring page in one step and return it as base64-encoded PNG. Optionally saves the page to output_path.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty("Absolute path to the source photo (PNG, JPEG or WebP)"),
					"brightness":  toneProperty("Brightness"),
					"contrast":    toneProperty("Contrast"),
					"invert":      invertProperty(),
					"output_path": pathProperty("Optional path to write the PNG page to"),
				},
				"required": []string{"path"},
			},
		},

		// Interactive session
		{
			Name:        "coloring_page_open",
			Description: "Open a photo in the editing session and start rendering its coloring page with the current brightness and contrast.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the source photo (PNG, JPEG or WebP)"),
					"reload": map[string]interface{}{
						"type":        "boolean",
						"description": "Read the file again even if it was loaded before. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "coloring_page_adjust",
			Description: "Change brightness, contrast or inversion of the open page. Rapid changes are coalesced and only the latest values are rendered.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"brightness": toneProperty("Brightness"),
					"contrast":   toneProperty("Contrast"),
					"invert":     invertProperty(),
				},
			},
		},
		{
			Name:        "coloring_page_status",
			Description: "Report the session state (idle, pending_debounce, processing, ready), current parameters and last error.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "coloring_page_export",
			Description: "Wait for the page matching the latest parameters and save it as PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"output_path": pathProperty("Path to write the PNG page to. Default coloring-page.png in the configured output directory"),
					"timeout_ms": map[string]interface{}{
						"type":        "integer",
						"description": "How long to wait for a pending render, in milliseconds. Default 5000",
						"default":     5000,
					},
					"include_image": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return the page as base64-encoded PNG. Default false",
						"default":     false,
					},
				},
			},
		},
		{
			Name:        "coloring_page_reset",
			Description: "Close the open photo, drop its page and reset brightness and contrast to 0.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
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
