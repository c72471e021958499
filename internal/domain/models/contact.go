package models

import (
	"strings"
	"time"
)

// ContactMessage is a message left through the public contact form.
type ContactMessage struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Message   string    `json:"message" db:"message"`
	Read      bool      `json:"read" db:"read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Validate trims the message fields in place and checks them.
func (m *ContactMessage) Validate() error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Message = strings.TrimSpace(m.Message)

	var errs []string
	if m.Name == "" {
		errs = append(errs, "name is required")
	}
	if len(m.Name) > 200 {
		errs = append(errs, "name must be 200 characters or less")
	}
	if m.Email == "" {
		errs = append(errs, "email is required")
	} else if !ValidEmail(m.Email) {
		errs = append(errs, "email is invalid")
	}
	if m.Message == "" {
		errs = append(errs, "message is required")
	}
	if len(m.Message) > 5000 {
		errs = append(errs, "message must be 5000 characters or less")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
