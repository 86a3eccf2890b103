package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"clinicalqa/internal/domain"
)

const systemInstruction = "You are a clinical assistant. Answer using only the provided context. If the context does not contain the answer, say that the data does not cover it."

// Session holds one conversation: the full append-only turn log plus the
// bounded view handed to the answer generator. History only shrinks through
// Clear.
type Session struct {
	mu     sync.Mutex
	id     string
	window int
	turns  []domain.Turn
}

// New creates an empty session. window bounds how many prior turns the
// generator sees; the full log is unbounded.
func New(window int) *Session {
	if window <= 0 {
		window = 3
	}
	return &Session{id: uuid.NewString(), window: window}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Ask builds the message sequence for the generator, calls it, and on
// success records the question and answer as two new turns. A failed
// generation leaves the history unchanged.
func (s *Session) Ask(question, groundingContext string, gen domain.Generator) (string, error) {
	s.mu.Lock()
	messages := s.buildMessages(question, groundingContext)
	s.mu.Unlock()

	answer, err := gen.Generate(messages)
	if err != nil {
		return "", fmt.Errorf("generating answer: %w", err)
	}

	s.mu.Lock()
	s.turns = append(s.turns,
		domain.Turn{Role: domain.RoleUser, Content: question},
		domain.Turn{Role: domain.RoleAssistant, Content: answer},
	)
	s.mu.Unlock()
	return answer, nil
}

// buildMessages assembles the fixed system instruction, one user message
// embedding the grounding context and question, and the last window prior
// turns oldest-to-newest. Caller holds the lock.
func (s *Session) buildMessages(question, groundingContext string) []domain.Message {
	messages := make([]domain.Message, 0, 2+s.window)
	messages = append(messages,
		domain.Message{Role: domain.RoleSystem, Content: systemInstruction},
		domain.Message{
			Role:    domain.RoleUser,
			Content: fmt.Sprintf("Answer the following question based on the context:\n\nQuestion: %s\n\nContext: %s", question, groundingContext),
		},
	)
	start := len(s.turns) - s.window
	if start < 0 {
		start = 0
	}
	for _, t := range s.turns[start:] {
		messages = append(messages, domain.Message{Role: t.Role, Content: t.Content})
	}
	return messages
}

// History returns a copy of the full turn log.
func (s *Session) History() []domain.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len returns the number of recorded turns.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}

// Clear resets the history to empty. It is the only way history shrinks.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = nil
}
