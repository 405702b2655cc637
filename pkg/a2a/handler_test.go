package a2a

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/localguide-ai/localguide/pkg/agent"
	"github.com/localguide-ai/localguide/pkg/llm"
)

type fakeProvider struct {
	text string
	err  error
}

func (f *fakeProvider) Name() string            { return "fake" }
func (f *fakeProvider) Models() []llm.ModelInfo { return nil }

func (f *fakeProvider) Chat(_ context.Context, _ llm.ChatRequest) (*llm.ChatResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llm.ChatResponse{Text: f.text, Usage: llm.Usage{InputTokens: 10, OutputTokens: 5}}, nil
}

type panickyRunner struct{}

func (panickyRunner) Run(_ context.Context, _ string) (*agent.Result, error) {
	panic("dispatch wiring broke")
}

func testHandler(t *testing.T) *Handler {
	t.Helper()
	rt := agent.NewRuntime(agent.RuntimeConfig{
		Provider: &fakeProvider{text: "Paris has the Eiffel Tower."},
		Model:    "fake-1",
	})
	return NewHandler(HandlerConfig{
		Card:   NewAgentCard("TestGuide", "A test guide", "http://localhost:8000"),
		Runner: rt,
	})
}

func postRPC(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) (JSONRPCResponse, Task) {
	t.Helper()
	var raw struct {
		JSONRPC string          `json:"jsonrpc"`
		Result  json.RawMessage `json:"result"`
		Error   *JSONRPCError   `json:"error"`
		ID      any             `json:"id"`
	}
	if err := json.NewDecoder(w.Body).Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var task Task
	if len(raw.Result) > 0 {
		if err := json.Unmarshal(raw.Result, &task); err != nil {
			t.Fatalf("decoding task: %v", err)
		}
	}
	return JSONRPCResponse{JSONRPC: raw.JSONRPC, Error: raw.Error, ID: raw.ID}, task
}

func TestAgentCardEndpoint(t *testing.T) {
	h := testHandler(t)
	req := httptest.NewRequest("GET", "/.well-known/agent-card.json", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var card AgentCard
	if err := json.NewDecoder(w.Body).Decode(&card); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if card.Name != "TestGuide" {
		t.Errorf("Name = %q, want %q", card.Name, "TestGuide")
	}
	if card.Skills[0].ID != "id_testguide" {
		t.Errorf("skill ID = %q, want %q", card.Skills[0].ID, "id_testguide")
	}
}

func TestMessageSendCompletes(t *testing.T) {
	h := testHandler(t)
	w := postRPC(t, h, `{"jsonrpc":"2.0","method":"message/send","params":{"message":{"parts":[{"kind":"text","text":"Tell me about Paris"}]}},"id":1}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body = %s", w.Code, http.StatusOK, w.Body.String())
	}

	resp, task := decodeResponse(t, w)
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	if resp.JSONRPC != "2.0" {
		t.Errorf("jsonrpc = %q, want %q", resp.JSONRPC, "2.0")
	}
	if id, ok := resp.ID.(float64); !ok || id != 1 {
		t.Errorf("id = %v, want 1", resp.ID)
	}

	if task.Kind != "task" {
		t.Errorf("Kind = %q, want %q", task.Kind, "task")
	}
	if task.Status.State != TaskStateCompleted {
		t.Errorf("State = %q, want %q", task.Status.State, TaskStateCompleted)
	}
	if len(task.Artifacts) != 1 || task.Artifacts[0].Parts[0].Text != "Paris has the Eiffel Tower." {
		t.Errorf("Artifacts = %+v, want single artifact with reply", task.Artifacts)
	}
	if len(task.History) != 2 {
		t.Errorf("History len = %d, want 2", len(task.History))
	}
}

func TestMessageSendContextIDRoundTrip(t *testing.T) {
	h := testHandler(t)
	w := postRPC(t, h, `{"jsonrpc":"2.0","method":"message/send","params":{"message":{"parts":[{"kind":"text","text":"hi"}]},"contextId":"ctx-7"},"id":1}`)

	_, task := decodeResponse(t, w)
	if task.ContextID == nil || *task.ContextID != "ctx-7" {
		t.Errorf("ContextID = %v, want ctx-7", task.ContextID)
	}
}

func TestMessageSendNullContextIDSerialized(t *testing.T) {
	h := testHandler(t)
	w := postRPC(t, h, `{"jsonrpc":"2.0","method":"message/send","params":{"message":{"parts":[{"kind":"text","text":"hi"}]}},"id":1}`)

	body := w.Body.String()
	if !strings.Contains(body, `"contextId":null`) {
		t.Errorf("body = %s, want contextId serialized as null", body)
	}
}

func TestMessageSendTaskFailureStillHTTP200(t *testing.T) {
	rt := agent.NewRuntime(agent.RuntimeConfig{
		Provider: &fakeProvider{err: context.DeadlineExceeded},
		Model:    "fake-1",
	})
	h := NewHandler(HandlerConfig{
		Card:   NewAgentCard("TestGuide", "A test guide", "http://localhost:8000"),
		Runner: rt,
	})

	w := postRPC(t, h, `{"jsonrpc":"2.0","method":"message/send","params":{"message":{"parts":[{"kind":"text","text":"hi"}]}},"id":9}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (task failure is not a protocol failure)", w.Code, http.StatusOK)
	}

	resp, task := decodeResponse(t, w)
	if resp.Error != nil {
		t.Fatalf("unexpected protocol error: %+v", resp.Error)
	}
	if task.Status.State != TaskStateFailed {
		t.Errorf("State = %q, want %q", task.Status.State, TaskStateFailed)
	}
	errText, _ := task.Metadata["error"].(string)
	if !strings.Contains(errText, "deadline exceeded") {
		t.Errorf("Metadata.error = %q, want timeout description", errText)
	}
	if len(task.Artifacts) != 0 {
		t.Errorf("Artifacts len = %d, want 0", len(task.Artifacts))
	}
}

func TestMessageSendNoTextContent(t *testing.T) {
	h := testHandler(t)
	w := postRPC(t, h, `{"jsonrpc":"2.0","method":"message/send","params":{"message":{"parts":[{"kind":"file"}]}},"id":1}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	_, task := decodeResponse(t, w)
	if task.Status.State != TaskStateFailed {
		t.Errorf("State = %q, want %q", task.Status.State, TaskStateFailed)
	}
	errText, _ := task.Metadata["error"].(string)
	if !strings.Contains(errText, "no text content") {
		t.Errorf("Metadata.error = %q, want no-text failure", errText)
	}
}

func TestMessageSendMissingMessage(t *testing.T) {
	h := testHandler(t)
	w := postRPC(t, h, `{"jsonrpc":"2.0","method":"message/send","params":{},"id":1}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	resp, _ := decodeResponse(t, w)
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("error = %+v, want code -32602", resp.Error)
	}
}

func TestMessageSendMessageNotObject(t *testing.T) {
	h := testHandler(t)
	w := postRPC(t, h, `{"jsonrpc":"2.0","method":"message/send","params":{"message":"just a string"},"id":1}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestTasksGetNotImplemented(t *testing.T) {
	h := testHandler(t)
	w := postRPC(t, h, `{"jsonrpc":"2.0","method":"tasks/get","params":{"id":"whatever"},"id":2}`)

	if w.Code != http.StatusNotImplemented {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotImplemented)
	}
	resp, _ := decodeResponse(t, w)
	if resp.Error == nil || resp.Error.Code != -32601 {
		t.Fatalf("error = %+v, want code -32601", resp.Error)
	}
	if resp.Error.Message != "Method not implemented: tasks/get" {
		t.Errorf("message = %q, want fixed not-implemented text", resp.Error.Message)
	}
}

func TestUnknownMethod(t *testing.T) {
	h := testHandler(t)
	w := postRPC(t, h, `{"jsonrpc":"2.0","method":"foo/bar","id":3}`)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	resp, _ := decodeResponse(t, w)
	if resp.Error == nil || resp.Error.Code != -32601 {
		t.Fatalf("error = %+v, want code -32601", resp.Error)
	}
	if !strings.Contains(resp.Error.Message, "foo/bar") {
		t.Errorf("message = %q, want method name embedded", resp.Error.Message)
	}
}

func TestMalformedBody(t *testing.T) {
	h := testHandler(t)
	w := postRPC(t, h, `{not json`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	resp, _ := decodeResponse(t, w)
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("error = %+v, want code -32602", resp.Error)
	}
	if resp.ID != nil {
		t.Errorf("id = %v, want null", resp.ID)
	}
}

func TestMalformedBodyRecoversID(t *testing.T) {
	h := testHandler(t)
	w := postRPC(t, h, `{"id":7,"method":5}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	resp, _ := decodeResponse(t, w)
	if id, ok := resp.ID.(float64); !ok || id != 7 {
		t.Errorf("id = %v, want 7 recovered from raw body", resp.ID)
	}
}

func TestInvalidVersion(t *testing.T) {
	h := testHandler(t)
	w := postRPC(t, h, `{"jsonrpc":"1.0","method":"message/send","id":1}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestInvalidIDType(t *testing.T) {
	h := testHandler(t)
	for _, body := range []string{
		`{"jsonrpc":"2.0","method":"message/send","id":true}`,
		`{"jsonrpc":"2.0","method":"message/send","id":1.5}`,
	} {
		w := postRPC(t, h, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d for body %s", w.Code, http.StatusBadRequest, body)
		}
	}
}

func TestMissingIDStillAnswered(t *testing.T) {
	h := testHandler(t)
	w := postRPC(t, h, `{"jsonrpc":"2.0","method":"message/send","params":{"message":{"parts":[{"kind":"text","text":"hi"}]}}}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), `"id":null`) {
		t.Errorf("body = %s, want id serialized as null", w.Body.String())
	}
}

func TestDispatchPanicBecomesInternalError(t *testing.T) {
	h := NewHandler(HandlerConfig{
		Card:   NewAgentCard("TestGuide", "A test guide", "http://localhost:8000"),
		Runner: panickyRunner{},
	})

	w := postRPC(t, h, `{"jsonrpc":"2.0","method":"message/send","params":{"message":{"parts":[{"kind":"text","text":"hi"}]}},"id":4}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	resp, _ := decodeResponse(t, w)
	if resp.Error == nil || resp.Error.Code != -32603 {
		t.Errorf("error = %+v, want code -32603", resp.Error)
	}
	if !strings.Contains(resp.Error.Message, "Internal error") {
		t.Errorf("message = %q, want internal error text", resp.Error.Message)
	}
}

func TestResultAndErrorAreExclusive(t *testing.T) {
	h := testHandler(t)

	ok := postRPC(t, h, `{"jsonrpc":"2.0","method":"message/send","params":{"message":{"parts":[{"kind":"text","text":"hi"}]}},"id":1}`)
	if strings.Contains(ok.Body.String(), `"error"`) {
		t.Errorf("success body = %s, want no error field", ok.Body.String())
	}

	bad := postRPC(t, h, `{"jsonrpc":"2.0","method":"foo/bar","id":1}`)
	if strings.Contains(bad.Body.String(), `"result"`) {
		t.Errorf("error body = %s, want no result field", bad.Body.String())
	}
}
