package contact

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"portfolio/models"
	"portfolio/storage"
)

// There is no mail backend; submission is simulated locally and the message
// lands in the JSON outbox so nothing is silently lost.

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	maxNameLen    = 100
	maxSubjectLen = 200
	minBodyLen    = 10
	maxBodyLen    = 5000
)

// Manager handles contact form validation and (simulated) delivery
type Manager struct {
	storage      *storage.Manager
	deliveryTime time.Duration
}

// NewManager creates a new contact manager
func NewManager(store *storage.Manager) *Manager {
	return &Manager{
		storage:      store,
		deliveryTime: 800 * time.Millisecond,
	}
}

// NewManagerWithDelay creates a contact manager with an explicit simulated
// delivery time, used by tests
func NewManagerWithDelay(store *storage.Manager, delay time.Duration) *Manager {
	return &Manager{storage: store, deliveryTime: delay}
}

// Validate checks a message the way the site's form did
func (m *Manager) Validate(msg *models.ContactMessage) error {
	name := strings.TrimSpace(msg.Name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > maxNameLen {
		return fmt.Errorf("name must be at most %d characters", maxNameLen)
	}

	email := strings.TrimSpace(msg.Email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("email address %q is not valid", email)
	}

	if len(strings.TrimSpace(msg.Subject)) > maxSubjectLen {
		return fmt.Errorf("subject must be at most %d characters", maxSubjectLen)
	}

	body := strings.TrimSpace(msg.Body)
	if len(body) < minBodyLen {
		return fmt.Errorf("message must be at least %d characters", minBodyLen)
	}
	if len(body) > maxBodyLen {
		return fmt.Errorf("message must be at most %d characters", maxBodyLen)
	}

	return nil
}

// Submit validates the message, simulates the network round trip and stores
// the delivered message in the outbox
func (m *Manager) Submit(msg *models.ContactMessage) error {
	if err := m.Validate(msg); err != nil {
		return err
	}

	// Simulated network latency; the original site had no backend either
	time.Sleep(m.deliveryTime)

	msg.MarkDelivered()
	if err := m.storage.AppendMessage(msg); err != nil {
		return fmt.Errorf("failed to store message: %w", err)
	}

	fmt.Printf("DEBUG: Contact message %s from %s delivered to outbox\n", msg.ID, msg.Email)
	return nil
}
