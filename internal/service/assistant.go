package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/set-night/tnguide/internal/config"
	"github.com/set-night/tnguide/internal/domain"
)

const (
	GreetingText    = "Hello! I'm your Tourist Assistant. How can I help you with tourist places in Tamil Nadu?"
	UnavailableText = "I'm sorry, the chatbot service is not configured. Please contact the administrator."
	RefusalText     = "Sorry! I'm a Tourist Assistant and can't help you with that. Please ask me about tourist places in Tamil Nadu."
	apologyFormat   = "I'm sorry, I encountered an error: %s. Please try again later."
)

const groundedSystemPrompt = `You are a helpful tourist guide for Tamil Nadu, India. You provide accurate, helpful, and friendly information about tourist places.

Your responses should be:
- Informative and detailed
- Friendly and welcoming
- Focused on practical tourist information
- Include tips for the best experience
- Mention local customs and etiquette when relevant

Always respond in a conversational tone and provide actionable advice.`

const generalSystemPrompt = `You are a helpful tourist guide for Tamil Nadu, India. You provide information about tourist places, travel tips, and general guidance for visitors to Tamil Nadu.

Tamil Nadu is known for:
- Ancient temples and religious sites
- Beautiful beaches along the Coromandel Coast
- Hill stations like Ooty and Kodaikanal
- Rich cultural heritage and classical dance forms
- Delicious South Indian cuisine
- Wildlife sanctuaries and national parks

Provide helpful, accurate, and friendly responses about Tamil Nadu tourism.`

// Completer is the generation backend the assistant talks to.
type Completer interface {
	Complete(ctx context.Context, messages []ChatMessage, maxTokens int, temperature float64) (string, error)
}

// ReplyKind tells which path produced a reply.
type ReplyKind string

const (
	ReplyGreeting    ReplyKind = "greeting"
	ReplyUnavailable ReplyKind = "unavailable"
	ReplyRefusal     ReplyKind = "refusal"
	ReplyGenerated   ReplyKind = "generated"
	ReplyFailed      ReplyKind = "failed"
)

type Reply struct {
	Text string
	Kind ReplyKind
}

// Assistant decides how to answer one chat message. It never fails: every
// outcome, including backend errors and panics, becomes a Reply.
type Assistant struct {
	apiKey  string
	backend Completer
}

func NewAssistant(apiKey string, backend Completer) *Assistant {
	return &Assistant{apiKey: apiKey, backend: backend}
}

// Configured reports whether generation is possible at all.
func (a *Assistant) Configured() bool {
	return strings.TrimSpace(a.apiKey) != "" && a.backend != nil
}

// Respond answers message. A nil place selects the general Tamil Nadu prompt.
// history must be in chronological order; only the latest turns are used.
func (a *Assistant) Respond(ctx context.Context, message string, place *domain.Place, history []domain.ChatTurn) (reply Reply) {
	switch {
	case Classify(message) == ScopeGreeting:
		return Reply{Text: GreetingText, Kind: ReplyGreeting}
	case !a.Configured():
		return Reply{Text: UnavailableText, Kind: ReplyUnavailable}
	case Classify(message) == ScopeOutOfDomain:
		return Reply{Text: RefusalText, Kind: ReplyRefusal}
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic while generating reply", "panic", r)
			reply = apology(fmt.Sprint(r))
		}
	}()

	messages, maxTokens := BuildPrompt(message, place, history)
	text, err := a.backend.Complete(ctx, messages, maxTokens, config.ChatTemperature)
	if err != nil {
		slog.Error("generation failed", "error", err, "grounded", place != nil)
		return apology(err.Error())
	}
	return Reply{Text: strings.TrimSpace(text), Kind: ReplyGenerated}
}

// BuildPrompt assembles the message list and token budget for one generation.
func BuildPrompt(message string, place *domain.Place, history []domain.ChatTurn) ([]ChatMessage, int) {
	system := generalSystemPrompt
	maxTokens := config.GeneralMaxTokens
	if place != nil {
		system = groundedSystemPrompt + "\n\nCurrent Place Context:\n" + PlaceContext(*place)
		maxTokens = config.GroundedMaxTokens
	}

	window := Windowed(history)
	messages := make([]ChatMessage, 0, 2+2*len(window))
	messages = append(messages, ChatMessage{Role: RoleSystem, Content: system})
	for _, ex := range window {
		messages = append(messages,
			ChatMessage{Role: RoleUser, Content: ex.Message},
			ChatMessage{Role: RoleAssistant, Content: ex.Response},
		)
	}
	messages = append(messages, ChatMessage{Role: RoleUser, Content: message})
	return messages, maxTokens
}

func apology(description string) Reply {
	return Reply{Text: fmt.Sprintf(apologyFormat, description), Kind: ReplyFailed}
}
