// Package server implements the MCP (Model Context Protocol) server for huey.
//
// It exposes sprite recoloring to MCP clients over JSON-RPC 2.0 so an
// assistant can preview a color, generate the palette for one sprite, or run
// a whole batch, then inspect the results.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Log output goes to stderr so it never mixes with responses.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// Any notifications/* message is accepted without a response. A line that
// is not JSON is answered with a -32700 parse error carrying a null id.
//
// # Available Tools
//
// Recoloring:
//   - huey_palette: List the named adjustments
//   - huey_recolor: Apply one explicit adjustment to one image
//   - huey_variants: Write every palette variant of one image
//   - huey_batch: Run a tree or flat batch over a folder
//
// Inspection:
//   - image_load: Image metadata, including whether it has alpha
//   - image_sample_color: Color at a pixel, with HSL in palette units
//   - image_dominant_colors: Most common colors
//
// # Image Caching
//
// Overlays and images passed to image_load are cached by path for the
// lifetime of the server process and decoded again when the file's size or
// modification time changes. Sources are decoded on every call. huey_batch
// uses its own cache per run.
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
//	srv := server.New(server.WithVersion(version), server.WithVerbose(debug))
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
