package a2a

import (
	"encoding/json"
	"fmt"
)

const jsonRPCVersion = "2.0"

type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      any             `json:"id,omitempty"`
}

// JSONRPCResponse always serializes jsonrpc and id (id may be null); exactly
// one of result/error is emitted, never both and never as an explicit null.
type JSONRPCResponse struct {
	JSONRPC string        `json:"jsonrpc"`
	Result  any           `json:"result,omitempty"`
	Error   *JSONRPCError `json:"error,omitempty"`
	ID      any           `json:"id"`
}

type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ErrorKind is the closed set of protocol-level failures. Each kind carries a
// fixed JSON-RPC code, HTTP status, and message template, so raw internal
// error text never reaches a client outside a bounded descriptive string.
type ErrorKind int

const (
	ErrInvalidParams ErrorKind = iota
	ErrMethodNotFound
	ErrMethodNotImplemented
	ErrInternal
)

var errorSpecs = map[ErrorKind]struct {
	Code     int
	Status   int
	Template string
}{
	ErrInvalidParams:        {Code: -32602, Status: 400, Template: "Invalid params: %s"},
	ErrMethodNotFound:       {Code: -32601, Status: 404, Template: "Method not found: %s"},
	ErrMethodNotImplemented: {Code: -32601, Status: 501, Template: "Method not implemented: %s"},
	ErrInternal:             {Code: -32603, Status: 500, Template: "Internal error: %s"},
}

func NewJSONRPCResponse(id any, result any) JSONRPCResponse {
	return JSONRPCResponse{
		JSONRPC: jsonRPCVersion,
		Result:  result,
		ID:      id,
	}
}

// NewJSONRPCError renders an error kind into the HTTP status and response
// envelope it maps to. detail fills the kind's message template.
func NewJSONRPCError(id any, kind ErrorKind, detail string) (int, JSONRPCResponse) {
	spec := errorSpecs[kind]
	return spec.Status, JSONRPCResponse{
		JSONRPC: jsonRPCVersion,
		Error:   &JSONRPCError{Code: spec.Code, Message: fmt.Sprintf(spec.Template, detail)},
		ID:      id,
	}
}
