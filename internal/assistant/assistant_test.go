package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReply_MissingKey(t *testing.T) {
	a := New(context.Background(), "", "")

	got := a.Reply(context.Background(), nil, "Is Mauro available?")
	assert.Equal(t, replyMissingKey, got)
}

func TestBuildPrompt(t *testing.T) {
	history := []Message{
		{Role: "user", Text: "Oi!"},
		{Role: "model", Text: "Olá! Como posso ajudar?"},
	}

	got := buildPrompt(history, "Quais são suas habilidades?")

	assert.Contains(t, got, "User: Oi!")
	assert.Contains(t, got, "M-Bot: Olá! Como posso ajudar?")
	assert.Contains(t, got, "User: Quais são suas habilidades?\nM-Bot:")
}
