package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatRole is who wrote a chat message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of a user's conversation with the career
// companion.
type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatRequest is the payload for sending a chat message.
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}

// ChatReply is the companion's answer to a ChatRequest.
type ChatReply struct {
	Message string `json:"message"`
}
