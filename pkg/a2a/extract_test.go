package a2a

import (
	"errors"
	"testing"
)

func TestExtractTextJoinsParts(t *testing.T) {
	msg := Message{Parts: []Part{
		{Kind: "text", Text: "Tell me about"},
		{Kind: "text", Text: "Paris"},
	}}

	got, err := ExtractText(msg)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if got != "Tell me about Paris" {
		t.Errorf("got %q, want %q", got, "Tell me about Paris")
	}
}

func TestExtractTextSkipsNonTextParts(t *testing.T) {
	msg := Message{Parts: []Part{
		{Kind: "file"},
		{Kind: "text", Text: "hello"},
		{Kind: "data"},
	}}

	got, err := ExtractText(msg)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestExtractTextSkipsEmptyTextParts(t *testing.T) {
	msg := Message{Parts: []Part{
		{Kind: "text", Text: ""},
		{Kind: "text", Text: "only this"},
	}}

	got, err := ExtractText(msg)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if got != "only this" {
		t.Errorf("got %q, want %q", got, "only this")
	}
}

func TestExtractTextNoParts(t *testing.T) {
	_, err := ExtractText(Message{})
	if !errors.Is(err, ErrNoTextContent) {
		t.Errorf("err = %v, want ErrNoTextContent", err)
	}
}

func TestExtractTextNoUsableText(t *testing.T) {
	msg := Message{Parts: []Part{
		{Kind: "file"},
		{Kind: "text", Text: ""},
	}}

	_, err := ExtractText(msg)
	if !errors.Is(err, ErrNoTextContent) {
		t.Errorf("err = %v, want ErrNoTextContent", err)
	}
}
