package a2a

import "encoding/json"

// AgentCard is the discovery document served at /.well-known/agent-card.json.
// It is built once at startup and never mutated afterwards.
type AgentCard struct {
	Name               string            `json:"name"`
	Description        string            `json:"description"`
	URL                string            `json:"url"`
	ProtocolVersion    string            `json:"protocolVersion"`
	DefaultInputModes  []string          `json:"defaultInputModes"`
	DefaultOutputModes []string          `json:"defaultOutputModes"`
	Version            string            `json:"version"`
	Capabilities       AgentCapabilities `json:"capabilities"`
	Skills             []AgentSkill      `json:"skills"`
	PreferredTransport string            `json:"preferredTransport"`
}

type AgentCapabilities struct {
	Streaming         bool `json:"streaming"`
	PushNotifications bool `json:"pushNotifications"`
}

type AgentSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Examples    []string `json:"examples"`
}

const (
	PartKindText = "text"
	PartKindFile = "file"
	PartKindData = "data"
)

// Part is one typed fragment of a message or artifact. Only text parts carry
// content this layer understands; file and data parts pass through inert.
type Part struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
}

type Message struct {
	Kind      string `json:"kind"`
	Role      string `json:"role"`
	MessageID string `json:"messageId"`
	Parts     []Part `json:"parts"`
}

type TaskState string

const (
	TaskStateCompleted  TaskState = "completed"
	TaskStateFailed     TaskState = "failed"
	TaskStateInProgress TaskState = "in-progress"
	TaskStateCanceled   TaskState = "canceled"
	TaskStateRejected   TaskState = "rejected"
)

type TaskStatus struct {
	State   TaskState `json:"state"`
	Message *Message  `json:"message,omitempty"`
}

type Artifact struct {
	Kind       string         `json:"kind"`
	ArtifactID string         `json:"artifactId"`
	Parts      []Part         `json:"parts"`
	Metadata   map[string]any `json:"metadata"`
}

// Task is the unit of work returned for every message/send call. History holds
// raw message objects so the inbound message echoes back verbatim; contextId is
// always serialized, null when the request carried none.
type Task struct {
	Kind      string            `json:"kind"`
	ID        string            `json:"id"`
	ContextID *string           `json:"contextId"`
	Status    TaskStatus        `json:"status"`
	History   []json.RawMessage `json:"history"`
	Artifacts []Artifact        `json:"artifacts"`
	Metadata  map[string]any    `json:"metadata"`
}
