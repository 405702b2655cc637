package a2a

import (
	"errors"
	"strings"
)

// ErrNoTextContent is returned when a message carries no usable text parts.
var ErrNoTextContent = errors.New("no text content found in message parts")

// ExtractText collects the non-empty text parts of msg in order and joins them
// with single spaces. Non-text parts are skipped, not rejected. The input is
// never mutated.
func ExtractText(msg Message) (string, error) {
	var texts []string
	for _, p := range msg.Parts {
		if p.Kind == PartKindText && p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	if len(texts) == 0 {
		return "", ErrNoTextContent
	}
	return strings.Join(texts, " "), nil
}
