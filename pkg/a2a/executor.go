package a2a

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/localguide-ai/localguide/pkg/agent"
)

// Runner is the agent capability the executor drives: one prompt in, one
// reply out. It is invoked at most once per task, with no retries.
type Runner interface {
	Run(ctx context.Context, prompt string) (*agent.Result, error)
}

// Executor turns a single inbound message into a terminal Task. Every call
// produces either a completed or a failed Task; capability failures never
// escape as errors.
type Executor struct {
	runner Runner
}

func NewExecutor(r Runner) *Executor {
	return &Executor{runner: r}
}

// Execute runs the task lifecycle: extract the user text from the raw message,
// invoke the agent capability, and assemble the Task. contextID is echoed
// verbatim on the returned Task, nil included.
func (e *Executor) Execute(ctx context.Context, rawMessage json.RawMessage, contextID *string) *Task {
	taskID := uuid.NewString()

	var msg Message
	if err := json.Unmarshal(rawMessage, &msg); err != nil {
		return failedTask(taskID, contextID, rawMessage, fmt.Errorf("decoding message: %w", err))
	}

	text, err := ExtractText(msg)
	if err != nil {
		return failedTask(taskID, contextID, rawMessage, err)
	}

	result, err := e.runner.Run(ctx, text)
	if err != nil {
		return failedTask(taskID, contextID, rawMessage, err)
	}

	reply := Message{
		Kind:      "message",
		Role:      "agent",
		MessageID: uuid.NewString(),
		Parts:     []Part{{Kind: PartKindText, Text: result.Text}},
	}
	replyRaw, _ := json.Marshal(reply)

	return &Task{
		Kind:      "task",
		ID:        taskID,
		ContextID: contextID,
		Status: TaskStatus{
			State:   TaskStateCompleted,
			Message: statusMessage("Task completed successfully"),
		},
		History: []json.RawMessage{rawMessage, replyRaw},
		Artifacts: []Artifact{{
			Kind:       "artifact",
			ArtifactID: uuid.NewString(),
			Parts:      []Part{{Kind: PartKindText, Text: result.Text}},
			Metadata:   map[string]any{},
		}},
		Metadata: map[string]any{},
	}
}

func failedTask(taskID string, contextID *string, rawMessage json.RawMessage, cause error) *Task {
	history := []json.RawMessage{}
	if len(rawMessage) > 0 {
		history = append(history, rawMessage)
	}
	return &Task{
		Kind:      "task",
		ID:        taskID,
		ContextID: contextID,
		Status: TaskStatus{
			State:   TaskStateFailed,
			Message: statusMessage("Error: " + cause.Error()),
		},
		History:   history,
		Artifacts: []Artifact{},
		Metadata:  map[string]any{"error": cause.Error()},
	}
}

func statusMessage(text string) *Message {
	return &Message{
		Kind:      "message",
		Role:      "agent",
		MessageID: uuid.NewString(),
		Parts:     []Part{{Kind: PartKindText, Text: text}},
	}
}
