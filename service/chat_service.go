package service

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	"tds-assistant/domain"
)

// ChatSession is the in-memory conversation owned by one client session.
type ChatSession struct {
	mu        sync.Mutex
	turns     []domain.ConversationTurn
	greeting  string
	responder Responder
	observers map[int]func(domain.ConversationTurn)
	nextObsID int
	logger    *zap.Logger
}

func NewChatSession(responder Responder, greeting string, logger *zap.Logger) *ChatSession {
	s := &ChatSession{
		greeting:  greeting,
		responder: responder,
		observers: make(map[int]func(domain.ConversationTurn)),
		logger:    logger,
	}
	s.turns = s.seed()
	return s
}

func (s *ChatSession) seed() []domain.ConversationTurn {
	if s.greeting == "" {
		return nil
	}
	return []domain.ConversationTurn{domain.NewTurn(s.greeting, false)}
}

// Send appends the user's message and places the assistant's reply directly
// after it. If the question was cleared or deleted while the responder ran,
// the reply is returned but not recorded.
func (s *ChatSession) Send(ctx context.Context, text string) (domain.ConversationTurn, error) {
	message := strings.TrimSpace(text)
	if message == "" {
		return domain.ConversationTurn{}, ErrEmptyMessage
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return domain.ConversationTurn{}, ErrMessageTooLong
	}

	question := domain.NewTurn(message, true)
	s.mu.Lock()
	s.turns = append(s.turns, question)
	s.mu.Unlock()
	s.notify(question)

	reply := s.responder.Respond(ctx, message)
	assistant := domain.NewTurn(reply, false)
	if s.insertAfter(question.ID, assistant) {
		s.notify(assistant)
	} else {
		s.logger.Debug("dropping reply to a question no longer in the history")
	}

	s.logger.Debug("chat turn completed",
		zap.Int("question_len", len(message)),
		zap.Int("reply_len", len(reply)),
	)
	return assistant, nil
}

// insertAfter places turn right after the turn with the given id.
func (s *ChatSession) insertAfter(id string, turn domain.ConversationTurn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.turns {
		if t.ID != id {
			continue
		}
		at := i + 1
		s.turns = append(s.turns, domain.ConversationTurn{})
		copy(s.turns[at+1:], s.turns[at:])
		s.turns[at] = turn
		return true
	}
	return false
}

func (s *ChatSession) notify(turn domain.ConversationTurn) {
	s.mu.Lock()
	observers := make([]func(domain.ConversationTurn), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(turn)
	}
}

// Turns returns a copy of the history in insertion order.
func (s *ChatSession) Turns() []domain.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.ConversationTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Clear drops the history and starts over with the greeting.
func (s *ChatSession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = s.seed()
}

func (s *ChatSession) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, turn := range s.turns {
		if turn.ID == id {
			s.turns = append(s.turns[:i:i], s.turns[i+1:]...)
			return nil
		}
	}
	return ErrTurnNotFound
}

// Subscribe registers fn for every appended turn. The returned func unregisters it.
func (s *ChatSession) Subscribe(fn func(domain.ConversationTurn)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextObsID
	s.nextObsID++
	s.observers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}
