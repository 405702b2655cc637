package a2a

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/localguide-ai/localguide/pkg/audit"
	"github.com/localguide-ai/localguide/pkg/telemetry"
)

// Handler exposes one agent over the A2A protocol: the discovery card on
// GET /.well-known/agent-card.json and a JSON-RPC 2.0 endpoint on POST /.
type Handler struct {
	router   chi.Router
	card     *AgentCard
	executor *Executor
	auditLog *audit.Logger
	logger   *slog.Logger
}

type HandlerConfig struct {
	Card     *AgentCard
	Runner   Runner
	AuditLog *audit.Logger
	Logger   *slog.Logger
}

func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	h := &Handler{
		card:     cfg.Card,
		executor: NewExecutor(cfg.Runner),
		auditLog: cfg.AuditLog,
		logger:   cfg.Logger,
	}
	h.buildRouter()
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) buildRouter() {
	r := chi.NewRouter()
	r.Get("/.well-known/agent-card.json", h.handleAgentCard)
	r.Post("/", h.handleJSONRPC)
	h.router = r
}

func (h *Handler) handleAgentCard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.card)
}

func (h *Handler) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		status, resp := NewJSONRPCError(nil, ErrInvalidParams, "unreadable request body")
		writeJSON(w, status, resp)
		return
	}
	status, resp := h.handle(r.Context(), body)
	writeJSON(w, status, resp)
}

type sendParams struct {
	Message   json.RawMessage `json:"message"`
	ContextID *string         `json:"contextId"`
}

// handle is the dispatch core: parse the envelope, route by method, wrap the
// outcome. Task-level failures are not protocol failures; they come back as a
// failed Task inside a 200 response.
func (h *Handler) handle(ctx context.Context, body []byte) (status int, resp JSONRPCResponse) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("rpc dispatch panic", slog.Any("panic", r))
			telemetry.Metrics.RPCRequestsTotal.WithLabelValues("unknown", "error").Inc()
			status, resp = NewJSONRPCError(bestEffortID(body), ErrInternal, fmt.Sprint(r))
		}
	}()

	req, errDetail := parseRequest(body)
	if errDetail != "" {
		h.rejected(ctx, "", errDetail)
		return NewJSONRPCError(bestEffortID(body), ErrInvalidParams, errDetail)
	}

	start := time.Now()
	defer func() {
		telemetry.Metrics.RPCDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
	}()

	switch req.Method {
	case "message/send":
		var params sendParams
		if len(req.Params) > 0 {
			if err := json.Unmarshal(req.Params, &params); err != nil {
				h.rejected(ctx, req.Method, "params must be an object")
				return NewJSONRPCError(req.ID, ErrInvalidParams, "params must be an object")
			}
		}
		if !isJSONObject(params.Message) {
			h.rejected(ctx, req.Method, "message must be an object")
			return NewJSONRPCError(req.ID, ErrInvalidParams, "message must be an object")
		}

		task := h.executor.Execute(ctx, params.Message, params.ContextID)
		h.recordTask(ctx, req.Method, task)
		return http.StatusOK, NewJSONRPCResponse(req.ID, task)

	case "tasks/get":
		// Tasks are stateless by design; there is nothing to retrieve.
		telemetry.Metrics.RPCRequestsTotal.WithLabelValues(req.Method, "error").Inc()
		return NewJSONRPCError(req.ID, ErrMethodNotImplemented, req.Method)

	default:
		telemetry.Metrics.RPCRequestsTotal.WithLabelValues("unknown", "error").Inc()
		return NewJSONRPCError(req.ID, ErrMethodNotFound, req.Method)
	}
}

// parseRequest validates the envelope shape. It returns a non-empty detail
// string on any violation so malformed requests are rejected before they reach
// task execution.
func parseRequest(body []byte) (JSONRPCRequest, string) {
	var req JSONRPCRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return req, "malformed request body"
	}
	if req.JSONRPC != "" && req.JSONRPC != jsonRPCVersion {
		return req, "unsupported jsonrpc version"
	}
	if req.Method == "" {
		return req, "method is required"
	}
	switch id := req.ID.(type) {
	case nil, string:
	case float64:
		if id != math.Trunc(id) {
			return req, "id must be a string or an integer"
		}
	default:
		return req, "id must be a string or an integer"
	}
	return req, ""
}

func (h *Handler) recordTask(ctx context.Context, method string, task *Task) {
	telemetry.Metrics.RPCRequestsTotal.WithLabelValues(method, "ok").Inc()
	telemetry.Metrics.TasksTotal.WithLabelValues(string(task.Status.State)).Inc()

	contextID := ""
	if task.ContextID != nil {
		contextID = *task.ContextID
	}

	switch task.Status.State {
	case TaskStateCompleted:
		h.logger.Info("task completed", slog.String("task_id", task.ID))
		h.auditEvent(ctx, audit.EventTaskCompleted, task.ID, contextID, method, "")
	case TaskStateFailed:
		errText, _ := task.Metadata["error"].(string)
		h.logger.Warn("task failed",
			slog.String("task_id", task.ID),
			slog.String("error", errText),
		)
		h.auditEvent(ctx, audit.EventTaskFailed, task.ID, contextID, method, errText)
	}
}

func (h *Handler) rejected(ctx context.Context, method, detail string) {
	telemetry.Metrics.RPCRequestsTotal.WithLabelValues(methodLabel(method), "error").Inc()
	h.logger.Debug("rpc request rejected",
		slog.String("method", method),
		slog.String("detail", detail),
	)
	h.auditEvent(ctx, audit.EventRPCRejected, "", "", method, detail)
}

func (h *Handler) auditEvent(ctx context.Context, eventType, taskID, contextID, method, detail string) {
	if h.auditLog == nil {
		return
	}
	if err := h.auditLog.Log(ctx, eventType, taskID, contextID, method, detail); err != nil {
		h.logger.Warn("audit log write failed", slog.String("error", err.Error()))
	}
}

func methodLabel(method string) string {
	if method == "" {
		return "unknown"
	}
	return method
}

// bestEffortID recovers the request id from a body that failed envelope
// validation, so error responses still correlate when the body is at least a
// JSON object.
func bestEffortID(body []byte) any {
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return nil
	}
	return m["id"]
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
