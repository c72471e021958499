package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"portfolio/internal/domain/models"
	"portfolio/internal/lib/logger/sl"
	"portfolio/internal/repository"
	"portfolio/internal/storage"
)

type ContactService struct {
	log  *slog.Logger
	repo repository.ContactRepository
}

func NewContactService(log *slog.Logger, repo repository.ContactRepository) *ContactService {
	return &ContactService{
		log:  log,
		repo: repo,
	}
}

// Submit validates a message from the public form and stores it unread.
func (s *ContactService) Submit(ctx context.Context, name, email, message string) (models.ContactMessage, error) {
	const op = "contact_service.Submit"

	msg := models.ContactMessage{
		Name:    name,
		Email:   email,
		Message: message,
	}
	if err := msg.Validate(); err != nil {
		return models.ContactMessage{}, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := s.repo.CreateMessage(ctx, msg)
	if err != nil {
		s.log.Error("failed to save message", slog.String("op", op), sl.Err(err))
		return models.ContactMessage{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("contact message received", slog.String("op", op), slog.String("id", saved.ID))

	return saved, nil
}

func (s *ContactService) List(ctx context.Context) ([]models.ContactMessage, error) {
	const op = "contact_service.List"

	msgs, err := s.repo.ListMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if msgs == nil {
		msgs = []models.ContactMessage{}
	}
	return msgs, nil
}

func (s *ContactService) UnreadCount(ctx context.Context) (int, error) {
	const op = "contact_service.UnreadCount"

	n, err := s.repo.CountUnread(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// MarkRead flags a message as read. A missing message is not an error.
func (s *ContactService) MarkRead(ctx context.Context, id string) error {
	const op = "contact_service.MarkRead"

	if err := s.repo.MarkRead(ctx, id); err != nil && !errors.Is(err, storage.ErrMessageNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete removes a message. A missing message is not an error.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	const op = "contact_service.Delete"

	if err := s.repo.DeleteMessage(ctx, id); err != nil && !errors.Is(err, storage.ErrMessageNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("contact message deleted", slog.String("op", op), slog.String("id", id))

	return nil
}
