// Package assistant is the Gemini-backed chat widget brain ("M-Bot").
// Whatever goes wrong (missing key, upstream outage, empty reply) the
// caller always gets a usable string back, never an error.
package assistant

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-3-flash-preview"

// Canned replies for the failure modes the widget has to survive.
const (
	replyMissingKey = "I'm sorry, my brain (API Key) is missing. Please contact Mauro to fix me!"
	replyBusy       = "My circuits are busy right now. Please try again later."
	replyThinking   = "I'm processing that thought..."
)

const systemInstruction = `You are the AI Assistant for Mauro Rocha's personal portfolio website.
Your name is "M-Bot".
Mauro is a Senior Frontend Engineer and Digital Architect based in Brazil.

Key Info about Mauro:
- Expertise: React, TypeScript, Next.js, WebGL, AI Integration, UI/UX Design.
- Experience: 10+ years in web development, working with top tier clients.
- Vibe: Disruptive, modern, minimalist, perfectionist.
- Contact: contato@mauro-rocha.com.br

Language Instructions:
- The default language of the website is Portuguese (PT-BR).
- If the user writes in Portuguese, REPLY IN PORTUGUESE.
- If the user writes in English, REPLY IN ENGLISH.

Your tone:
- Professional but witty.
- Short, punchy sentences.
- Confident and helpful.

Goal:
- Answer questions about Mauro's skills, availability, and projects.
- Encourage the user to contact him for work.
- Do not hallucinate projects that aren't real, stick to general impressive descriptions if specific data is missing.`

// Message is one turn of the widget conversation.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type Assistant struct {
	client *genai.Client
	model  string
}

// New builds the assistant. An empty API key leaves the client nil and
// every Reply returns the missing-key apology.
func New(ctx context.Context, apiKey, model string) *Assistant {
	if model == "" {
		model = defaultModel
	}
	if apiKey == "" {
		log.Printf("[warn] operation=assistant.new message=GEMINI_API_KEY not set, chat disabled")
		return &Assistant{model: model}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		log.Printf("[error] operation=assistant.new error=%v", err)
		return &Assistant{model: model}
	}
	return &Assistant{client: client, model: model}
}

// Reply answers the visitor's message given the conversation so far.
func (a *Assistant) Reply(ctx context.Context, history []Message, userMessage string) string {
	if a == nil || a.client == nil {
		return replyMissingKey
	}

	resp, err := a.client.Models.GenerateContent(ctx,
		a.model,
		genai.Text(buildPrompt(history, userMessage)),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		},
	)
	if err != nil {
		log.Printf("[error] operation=assistant.reply error=%v", err)
		return replyBusy
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return replyThinking
	}
	return text
}

func buildPrompt(history []Message, userMessage string) string {
	var b strings.Builder
	b.WriteString("Conversation History:\n")
	for _, m := range history {
		speaker := "M-Bot"
		if m.Role == "user" {
			speaker = "User"
		}
		fmt.Fprintf(&b, "%s: %s\n", speaker, m.Text)
	}
	fmt.Fprintf(&b, "User: %s\nM-Bot:", userMessage)
	return b.String()
}
