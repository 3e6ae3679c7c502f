package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ironsheep/huey/internal/imaging"
)

// ServerName and ServerVersion are reported in the initialize handshake.
// ServerVersion is used when no WithVersion option is given.
const (
	ServerName    = "huey"
	ServerVersion = "0.1.0"
)

// protocolVersion is the MCP revision the handshake advertises.
const protocolVersion = "2024-11-05"

// maxRequestBytes bounds a single request line. tools/call arguments are
// paths and numbers, never image data, so this is generous.
const maxRequestBytes = 1024 * 1024

// Server answers MCP requests for the huey recoloring tools.
type Server struct {
	cache   *imaging.ImageCache
	version string
	verbose bool
	methods map[string]methodFunc
}

type methodFunc func(*MCPRequest) *MCPResponse

// Option configures a Server.
type Option func(*Server)

// WithVersion sets the version reported in serverInfo.
func WithVersion(v string) Option {
	return func(s *Server) {
		if v != "" {
			s.version = v
		}
	}
}

// WithVerbose logs every request method and tool call to stderr.
func WithVerbose(verbose bool) Option {
	return func(s *Server) { s.verbose = verbose }
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server with an empty overlay cache.
func New(opts ...Option) *Server {
	s := &Server{
		cache:   imaging.NewImageCache(),
		version: ServerVersion,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.methods = map[string]methodFunc{
		"initialize": s.handleInitialize,
		"tools/list": s.handleToolsList,
		"tools/call": s.handleToolsCall,
		"ping":       s.handlePing,
	}
	return s
}

// Run serves stdin to stdout.
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads newline-delimited JSON-RPC requests from r and writes
// responses to w until r is exhausted. A line that is not valid JSON gets a
// -32700 response with a null id.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRequestBytes)
	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var resp *MCPResponse
		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			resp = s.errorResponse(nil, -32700, "Parse error", err.Error())
		} else {
			resp = s.handleRequest(&req)
		}

		if resp == nil {
			continue
		}
		if err := encoder.Encode(resp); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read request: %w", err)
	}
	return nil
}

// handleRequest routes a request to its method. Notifications never get a
// response.
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	if strings.HasPrefix(req.Method, "notifications/") {
		if s.verbose {
			log.Printf("notification %s", req.Method)
		}
		return nil
	}

	handle, ok := s.methods[req.Method]
	if !ok {
		return s.errorResponse(req.ID, -32601, fmt.Sprintf("Method not found: %s", req.Method), "")
	}

	if !s.verbose {
		return handle(req)
	}
	start := time.Now()
	resp := handle(req)
	if resp.Error != nil {
		log.Printf("%s id=%v failed in %s: %s", req.Method, req.ID, time.Since(start), resp.Error.Message)
	} else {
		log.Printf("%s id=%v done in %s", req.Method, req.ID, time.Since(start))
	}
	return resp
}

func (s *Server) handlePing(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  map[string]interface{}{},
	}
}

// handleInitialize advertises the tools capability and server identity.
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    ServerName,
				"version": s.version,
			},
		},
	}
}
