package llm

import (
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestBuildOpenAIMessages(t *testing.T) {
	req := Request{
		System: "be safe",
		Messages: []Message{
			{Role: RoleUser, Content: "hi"},
			{Role: RoleAssistant, Content: "hello"},
			{Role: RoleUser, Content: "quiz me"},
		},
	}

	msgs := buildOpenAIMessages(req)
	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(msgs))
	}
	if msgs[0].Role != openai.ChatMessageRoleSystem || msgs[0].Content != "be safe" {
		t.Errorf("system message wrong: %+v", msgs[0])
	}
	if msgs[2].Role != openai.ChatMessageRoleAssistant {
		t.Errorf("expected assistant role, got %q", msgs[2].Role)
	}
}

func TestBuildOpenAIMessages_NoSystem(t *testing.T) {
	msgs := buildOpenAIMessages(Request{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Role != openai.ChatMessageRoleUser {
		t.Errorf("expected user role, got %q", msgs[0].Role)
	}
}

func TestMapOpenAIStopReason(t *testing.T) {
	tests := []struct {
		in   openai.FinishReason
		want string
	}{
		{openai.FinishReasonStop, "end"},
		{openai.FinishReasonLength, "max_tokens"},
		{openai.FinishReasonContentFilter, "end"},
	}
	for _, tt := range tests {
		if got := mapOpenAIStopReason(tt.in); got != tt.want {
			t.Errorf("mapOpenAIStopReason(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewOpenAIProvider_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIProvider(OpenAIConfig{}); err == nil {
		t.Fatal("expected error for missing API key")
	}
}
