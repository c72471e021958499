package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"portfolio/internal/catalog"
	"portfolio/internal/domain/models"
	"portfolio/internal/lib/logger/sl"
	"portfolio/internal/metrics"
)

// Migrate copies catalog items of a section that the store does not hold yet,
// comparing URLs case-insensitively. Inserts go in chunks; the first failing
// chunk stops the run and earlier chunks stay committed. It reports whether
// any row was inserted, so a second run is a no-op returning false.
func (s *MediaService) Migrate(ctx context.Context, section string) (bool, error) {
	const op = "media_service.Migrate"

	if _, err := models.MediaSection(section); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	log := s.log.With(slog.String("op", op), slog.String("section", section))

	entries := catalog.Media(section)
	if len(entries) == 0 {
		return false, nil
	}

	urls, err := s.repo.ListMediaURLs(ctx, section)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	existing := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		existing[strings.ToLower(u)] = struct{}{}
	}

	var pending []models.MediaItem
	for _, e := range entries {
		key := strings.ToLower(e.URL)
		if _, ok := existing[key]; ok {
			continue
		}
		existing[key] = struct{}{}

		pending = append(pending, models.MediaItem{
			Section:      section,
			FileName:     e.Name,
			URL:          e.URL,
			Kind:         e.Kind,
			DisplayOrder: len(pending),
			GroupKey:     e.GroupKey,
			PairRole:     e.PairRole,
		})
	}
	if len(pending) == 0 {
		log.Info("nothing to migrate")
		return false, nil
	}

	batch := s.cfg.MigrationBatch
	for start := 0; start < len(pending); start += batch {
		end := min(start+batch, len(pending))

		if err := s.repo.CreateMediaBatch(ctx, pending[start:end]); err != nil {
			log.Error("migration chunk failed",
				slog.Int("inserted", start),
				slog.Int("total", len(pending)),
				sl.Err(err),
			)
			metrics.MigratedItems.WithLabelValues(section).Add(float64(start))
			return start > 0, fmt.Errorf("%s: %w", op, &models.BatchError{
				Op:        "migrate " + section,
				Succeeded: start,
				Total:     len(pending),
				Err:       err,
			})
		}
	}

	metrics.MigratedItems.WithLabelValues(section).Add(float64(len(pending)))
	log.Info("section migrated", slog.Int("inserted", len(pending)))

	return true, nil
}

// MigrateAll migrates every section that has catalog media and reports the
// outcome per section. It keeps going after a failed section.
func (s *MediaService) MigrateAll(ctx context.Context) (map[string]bool, error) {
	const op = "media_service.MigrateAll"

	out := make(map[string]bool)
	var firstErr error
	for _, section := range catalog.Sections() {
		migrated, err := s.Migrate(ctx, section)
		out[section] = migrated
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return out, fmt.Errorf("%s: %w", op, firstErr)
	}
	return out, nil
}
