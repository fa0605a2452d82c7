// Package llm implements the optional response drafter on a hosted
// model. The core analysis pipeline never depends on this package
// being configured or reachable.
package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Veraticus/ticket-triage/internal/model"
)

// Config holds hosted-model configuration.
type Config struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// Drafter implements service.ResponseDrafter over the OpenAI chat API.
type Drafter struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewDrafter creates a drafter with the given configuration.
func NewDrafter(cfg Config) (*Drafter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm API key is required")
	}

	chatModel := cfg.Model
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 500
	}

	return &Drafter{
		client:      openai.NewClient(cfg.APIKey),
		model:       chatModel,
		maxTokens:   maxTokens,
		temperature: float32(cfg.Temperature),
	}, nil
}

// DraftReply generates a reply draft grounded in the analysis report.
func (d *Drafter) DraftReply(ctx context.Context, report *model.TicketReport, instruction string) (string, error) {
	if instruction == "" {
		instruction = "Draft a polite, concise reply to the customer summarizing the current state of their ticket."
	}

	resp, err := d.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       d.model,
		MaxTokens:   d.maxTokens,
		Temperature: d.temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You are a support agent for an insurance service desk. " +
					"Use only the provided analysis context; do not invent policy details.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildContext(report) + "\n\n" + instruction,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("draft request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("draft request returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func buildContext(report *model.TicketReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ticket #%d: %s\n", report.Ticket.ID, report.Ticket.Subject)
	fmt.Fprintf(&b, "Status: %s\n", report.Ticket.Status)
	fmt.Fprintf(&b, "Category: %s\n", strings.Join(report.Classification.CategoryPath, " / "))
	fmt.Fprintf(&b, "Procedure: %s\n", report.Classification.SOP.Name)
	fmt.Fprintf(&b, "Pending on: %s (confidence %.2f)\n", report.Pending.Primary, report.Pending.Confidence)
	for _, ev := range report.Pending.EvidencePreview() {
		fmt.Fprintf(&b, "- %s\n", ev)
	}
	for _, act := range report.Actions {
		fmt.Fprintf(&b, "Action [%s]: %s\n", act.Priority, act.Description)
	}
	return b.String()
}
