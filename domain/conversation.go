package domain

import (
	"time"

	"github.com/google/uuid"
)

type ConversationTurn struct {
	ID        string    `json:"id"`
	FromUser  bool      `json:"from_user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func NewTurn(text string, fromUser bool) ConversationTurn {
	return ConversationTurn{
		ID:        uuid.NewString(),
		FromUser:  fromUser,
		Text:      text,
		CreatedAt: time.Now(),
	}
}
