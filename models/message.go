package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactMessage represents one submission of the contact form
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Delivered bool      `json:"delivered"`
}

// NewContactMessage creates a new message instance with a unique ID
func NewContactMessage(name, email, subject, body string) *ContactMessage {
	return &ContactMessage{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Subject:   subject,
		Body:      body,
		CreatedAt: time.Now(),
	}
}

// MarkDelivered records a completed (simulated) delivery
func (m *ContactMessage) MarkDelivered() {
	m.Delivered = true
}
