package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"portfolio/internal/catalog"
	"portfolio/internal/domain/models"
	"portfolio/internal/lib/logger/sl"
	"portfolio/internal/metrics"
	"portfolio/internal/repository"
	"portfolio/internal/storage"
)

type ContentService struct {
	log    *slog.Logger
	repo   repository.ContentRepository
	images ImageStore
}

func NewContentService(log *slog.Logger, repo repository.ContentRepository) *ContentService {
	return &ContentService{
		log:  log,
		repo: repo,
	}
}

// Get returns the stored content of a section. Without a stored record the
// catalog default is served, and sections with no default get an empty
// generic record. Both are flagged as fallback.
func (s *ContentService) Get(ctx context.Context, section string) (models.ContentRecord, error) {
	const op = "content_service.Get"

	if _, ok := models.LookupSection(section); !ok {
		return models.ContentRecord{}, fmt.Errorf("%s: %w", op, models.ErrUnknownSection)
	}

	log := s.log.With(
		slog.String("op", op),
		slog.String("section", section),
	)

	rec, err := s.repo.GetContent(ctx, section)
	if err == nil {
		return rec, nil
	}

	reason := "empty"
	if !errors.Is(err, storage.ErrContentNotFound) {
		log.Warn("failed to read stored content, serving default", sl.Err(err))
		reason = "store_error"
	}
	metrics.FallbackServed.WithLabelValues(section, reason).Inc()

	return defaultContent(section), nil
}

func defaultContent(section string) models.ContentRecord {
	if rec, ok := catalog.Content(section); ok {
		return rec
	}
	return models.ContentRecord{
		Section:    section,
		Variant:    models.ContentGeneric,
		Generic:    &models.GenericContent{},
		IsFallback: true,
	}
}

// Save validates a raw content payload against the section's variant and
// upserts it.
func (s *ContentService) Save(ctx context.Context, section string, raw json.RawMessage) (models.ContentRecord, error) {
	const op = "content_service.Save"

	if _, ok := models.LookupSection(section); !ok {
		return models.ContentRecord{}, fmt.Errorf("%s: %w", op, models.ErrUnknownSection)
	}

	rec, err := models.DecodeContent(section, raw)
	if err != nil {
		return models.ContentRecord{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := rec.Validate(); err != nil {
		return models.ContentRecord{}, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := s.repo.UpsertContent(ctx, rec)
	if err != nil {
		s.log.Error("failed to save content", slog.String("op", op), slog.String("section", section), sl.Err(err))
		return models.ContentRecord{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("content saved", slog.String("op", op), slog.String("section", section))

	return saved, nil
}

// All returns the content of every section that has some, stored records
// taking precedence over catalog defaults.
func (s *ContentService) All(ctx context.Context) (map[string]models.ContentRecord, error) {
	const op = "content_service.All"

	out := make(map[string]models.ContentRecord)
	for _, sec := range models.Sections() {
		if rec, ok := catalog.Content(sec.Name); ok {
			out[sec.Name] = rec
		}
	}

	stored, err := s.repo.ListContent(ctx)
	if err != nil {
		s.log.Warn("failed to read stored content, serving defaults", slog.String("op", op), sl.Err(err))
		return out, nil
	}
	for _, rec := range stored {
		out[rec.Section] = rec
	}

	return out, nil
}

// Migrate copies the catalog default of a section into the store. It does
// nothing when the section already has stored content or no default exists.
func (s *ContentService) Migrate(ctx context.Context, section string) (bool, error) {
	const op = "content_service.Migrate"

	if _, ok := models.LookupSection(section); !ok {
		return false, fmt.Errorf("%s: %w", op, models.ErrUnknownSection)
	}

	log := s.log.With(
		slog.String("op", op),
		slog.String("section", section),
	)

	_, err := s.repo.GetContent(ctx, section)
	if err == nil {
		log.Debug("content already stored")
		return false, nil
	}
	if !errors.Is(err, storage.ErrContentNotFound) {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	rec, ok := catalog.Content(section)
	if !ok {
		return false, nil
	}
	rec.IsFallback = false

	if _, err := s.repo.UpsertContent(ctx, rec); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("content migrated")

	return true, nil
}
