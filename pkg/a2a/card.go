package a2a

import (
	"fmt"
	"strings"
)

const ProtocolVersion = "2024-11-05"

const cardVersion = "1.0.0"

// NewAgentCard builds the discovery card for an agent. The same inputs always
// produce the same card: one default skill whose id is derived from the agent
// name, text-only modes, and no streaming or push-notification support.
func NewAgentCard(name, description, baseURL string) *AgentCard {
	skill := AgentSkill{
		ID:          "id_" + strings.ReplaceAll(strings.ToLower(name), " ", "_"),
		Name:        name,
		Description: description,
		Tags:        []string{"agent-framework-origin", "generated-skill"},
		Examples:    []string{fmt.Sprintf("Ask %s a question", name)},
	}

	return &AgentCard{
		Name:               name,
		Description:        description,
		URL:                baseURL,
		ProtocolVersion:    ProtocolVersion,
		DefaultInputModes:  []string{"text"},
		DefaultOutputModes: []string{"text"},
		Version:            cardVersion,
		Capabilities:       AgentCapabilities{Streaming: false, PushNotifications: false},
		Skills:             []AgentSkill{skill},
		PreferredTransport: "http",
	}
}
