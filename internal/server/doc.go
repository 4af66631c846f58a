// Package server implements the MCP (Model Context Protocol) server that turns
// photos into coloring pages.
//
// This package provides a JSON-RPC 2.0 server that exposes the coloring page
// pipeline through the MCP protocol, so an assistant can convert a photo,
// tune it and save the result on the user's behalf.
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
// Source Images:
//   - image_load: Load a PNG, JPEG or WebP image and get metadata
//   - image_dimensions: Get width and height
//
// One-shot Conversion:
//   - coloring_page_create: Photo in, base64 PNG page out
//
// Interactive Session:
//   - coloring_page_open: Open a photo and render it
//   - coloring_page_adjust: Change brightness, contrast or inversion
//   - coloring_page_status: Report the session state
//   - coloring_page_export: Wait for the latest page and save it
//   - coloring_page_reset: Close the photo and reset parameters
//
// The session holds one photo at a time. Adjustments are debounced by the
// interval from config (COLORING_PAGE_DEBOUNCE), so a burst of slider moves
// renders only the final values.
//
// # Image Caching
//
// Decoded photos are cached by path and reused across tool calls.
// coloring_page_open with reload set re-reads a file that changed on disk,
// and coloring_page_reset empties the cache.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New(cfg)
//	defer srv.Close()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
