package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/set-night/tnguide/internal/config"
	"github.com/set-night/tnguide/internal/domain"
)

type completeCall struct {
	messages    []ChatMessage
	maxTokens   int
	temperature float64
}

type stubCompleter struct {
	text  string
	err   error
	panic any
	calls []completeCall
}

func (s *stubCompleter) Complete(_ context.Context, messages []ChatMessage, maxTokens int, temperature float64) (string, error) {
	s.calls = append(s.calls, completeCall{messages: messages, maxTokens: maxTokens, temperature: temperature})
	if s.panic != nil {
		panic(s.panic)
	}
	return s.text, s.err
}

func TestAssistant_GreetingSkipsBackend(t *testing.T) {
	for _, key := range []string{"", "sk-test"} {
		backend := &stubCompleter{text: "unused"}
		a := NewAssistant(key, backend)

		reply := a.Respond(context.Background(), "Hi", nil, nil)

		assert.Equal(t, GreetingText, reply.Text)
		assert.Equal(t, ReplyGreeting, reply.Kind)
		assert.Empty(t, backend.calls)
	}
}

func TestAssistant_OutOfDomainRefused(t *testing.T) {
	backend := &stubCompleter{text: "Paris"}
	a := NewAssistant("sk-test", backend)

	reply := a.Respond(context.Background(), "What's the capital of France?", nil, nil)

	assert.Equal(t, RefusalText, reply.Text)
	assert.Equal(t, ReplyRefusal, reply.Kind)
	assert.Empty(t, backend.calls)
}

func TestAssistant_UnconfiguredBeforeDomainGate(t *testing.T) {
	backend := &stubCompleter{text: "unused"}
	a := NewAssistant("", backend)
	place := basePlace()
	place.EntryFee = "₹50"

	reply := a.Respond(context.Background(), "What is the entry fee for the fort?", &place, nil)
	assert.Equal(t, UnavailableText, reply.Text)
	assert.Equal(t, ReplyUnavailable, reply.Kind)

	reply = a.Respond(context.Background(), "What's the capital of France?", nil, nil)
	assert.Equal(t, ReplyUnavailable, reply.Kind)
	assert.Empty(t, backend.calls)
}

func TestAssistant_WhitespaceKeyIsUnconfigured(t *testing.T) {
	a := NewAssistant("   ", &stubCompleter{})
	assert.False(t, a.Configured())
	assert.False(t, NewAssistant("sk", nil).Configured())
}

func TestAssistant_GroundedGeneration(t *testing.T) {
	backend := &stubCompleter{text: "  Entry costs ₹50.\n"}
	a := NewAssistant("sk-test", backend)
	place := basePlace()
	place.EntryFee = "₹50"

	reply := a.Respond(context.Background(), "What is the entry fee?", &place, nil)

	assert.Equal(t, "Entry costs ₹50.", reply.Text)
	assert.Equal(t, ReplyGenerated, reply.Kind)
	require.Len(t, backend.calls, 1)
	call := backend.calls[0]
	assert.Equal(t, config.GroundedMaxTokens, call.maxTokens)
	assert.Equal(t, config.ChatTemperature, call.temperature)
	require.Len(t, call.messages, 2)
	assert.Equal(t, RoleSystem, call.messages[0].Role)
	assert.Contains(t, call.messages[0].Content, "Current Place Context:\nTourist Place Information:")
	assert.Contains(t, call.messages[0].Content, "Entry Fee: ₹50")
	assert.Equal(t, ChatMessage{Role: RoleUser, Content: "What is the entry fee?"}, call.messages[1])
}

func TestAssistant_GeneralGeneration(t *testing.T) {
	backend := &stubCompleter{text: "Try Marina Beach."}
	a := NewAssistant("sk-test", backend)

	reply := a.Respond(context.Background(), "recommend a beach", nil, nil)

	assert.Equal(t, ReplyGenerated, reply.Kind)
	require.Len(t, backend.calls, 1)
	assert.Equal(t, config.GeneralMaxTokens, backend.calls[0].maxTokens)
	system := backend.calls[0].messages[0].Content
	assert.Equal(t, generalSystemPrompt, system)
	assert.True(t, strings.HasPrefix(system, "You are a helpful tourist guide for Tamil Nadu, India."))
	assert.Contains(t, system, "Tamil Nadu is known for:\n- Ancient temples and religious sites\n")
	assert.Contains(t, system, "- Delicious South Indian cuisine\n")
	assert.NotContains(t, system, "Current Place Context")
}

func TestAssistant_WindowsHistory(t *testing.T) {
	backend := &stubCompleter{text: "ok"}
	a := NewAssistant("sk-test", backend)

	a.Respond(context.Background(), "what about the temple timings?", nil, turns(7))

	require.Len(t, backend.calls, 1)
	msgs := backend.calls[0].messages
	require.Len(t, msgs, 1+5*2+1)
	for i := 0; i < 5; i++ {
		n := i + 3
		assert.Equal(t, ChatMessage{Role: RoleUser, Content: fmt.Sprintf("m%d", n)}, msgs[1+2*i])
		assert.Equal(t, ChatMessage{Role: RoleAssistant, Content: fmt.Sprintf("r%d", n)}, msgs[2+2*i])
	}
	assert.Equal(t, ChatMessage{Role: RoleUser, Content: "what about the temple timings?"}, msgs[len(msgs)-1])
}

func TestAssistant_BackendFailureBecomesApology(t *testing.T) {
	backend := &stubCompleter{err: &BackendError{StatusCode: 429, Message: "rate limited"}}
	a := NewAssistant("sk-test", backend)

	reply := a.Respond(context.Background(), "best time to visit Ooty", nil, nil)

	assert.Equal(t, ReplyFailed, reply.Kind)
	assert.Equal(t, "I'm sorry, I encountered an error: rate limited (status 429). Please try again later.", reply.Text)
}

func TestAssistant_PanicBecomesApology(t *testing.T) {
	a := NewAssistant("sk-test", &stubCompleter{panic: errors.New("boom")})

	var reply Reply
	assert.NotPanics(t, func() {
		reply = a.Respond(context.Background(), "places to visit", nil, nil)
	})
	assert.Equal(t, ReplyFailed, reply.Kind)
	assert.Equal(t, "I'm sorry, I encountered an error: boom. Please try again later.", reply.Text)
}

func TestBuildPrompt_PlaceGrounding(t *testing.T) {
	p := basePlace()
	msgs, maxTokens := BuildPrompt("timings?", &p, []domain.ChatTurn{{Message: "a", Response: "b"}})

	assert.Equal(t, config.GroundedMaxTokens, maxTokens)
	require.Len(t, msgs, 4)
	assert.Equal(t, []string{RoleSystem, RoleUser, RoleAssistant, RoleUser},
		[]string{msgs[0].Role, msgs[1].Role, msgs[2].Role, msgs[3].Role})
}
