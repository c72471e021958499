package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"portfolio/internal/catalog"
	"portfolio/internal/domain/models"
	"portfolio/internal/lib/grouping"
	"portfolio/internal/lib/logger/sl"
	"portfolio/internal/metrics"
	"portfolio/internal/repository"
	"portfolio/internal/storage/filestorage"

	"github.com/google/uuid"
)

const DefaultMigrationBatchSize = 10

// Buckets names the blob bucket of each media kind.
type Buckets struct {
	Image string
	Video string
}

func (b Buckets) For(kind models.MediaKind) string {
	if kind == models.MediaKindVideo {
		return b.Video
	}
	return b.Image
}

type Config struct {
	Buckets        Buckets
	MigrationBatch int
	MaxFileSize    int64
}

// MediaService reconciles stored media with the catalog and manages uploads.
type MediaService struct {
	log   *slog.Logger
	repo  repository.MediaRepository
	files filestorage.FileStorage
	cfg   Config

	now     func() time.Time
	randKey func() string
}

func NewMediaService(log *slog.Logger, repo repository.MediaRepository, files filestorage.FileStorage, cfg Config) *MediaService {
	if cfg.MigrationBatch <= 0 {
		cfg.MigrationBatch = DefaultMigrationBatchSize
	}
	if cfg.Buckets.Image == "" {
		cfg.Buckets.Image = "portfolio-images"
	}
	if cfg.Buckets.Video == "" {
		cfg.Buckets.Video = "portfolio-videos"
	}

	return &MediaService{
		log:   log,
		repo:  repo,
		files: files,
		cfg:   cfg,
		now:   time.Now,
		randKey: func() string {
			return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		},
	}
}

// Resolve returns the items shown in a section. Stored items win outright;
// only when the store has none (or cannot be read) are catalog items
// synthesized. An empty kind means the section's own kind.
func (s *MediaService) Resolve(ctx context.Context, section string, kind models.MediaKind) ([]models.MediaItem, error) {
	const op = "media_service.Resolve"

	sec, err := models.MediaSection(section)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if kind == "" {
		kind = sec.Kind
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%s: %w", op, &models.ValidationError{
			Errors: []string{fmt.Sprintf("unknown media type %q", kind)},
		})
	}

	log := s.log.With(
		slog.String("op", op),
		slog.String("section", section),
		slog.String("kind", string(kind)),
	)

	reason := "empty"
	items, err := s.repo.ListMedia(ctx, repository.MediaFilter{Section: section, Kind: kind})
	if err != nil {
		log.Warn("failed to read stored media, serving catalog", sl.Err(err))
		items = nil
		reason = "store_error"
	}
	if len(items) > 0 {
		return items, nil
	}

	fallback := catalog.Items(section, kind)
	if len(fallback) > 0 {
		metrics.FallbackServed.WithLabelValues(section, reason).Inc()
		log.Debug("serving catalog media", slog.Int("count", len(fallback)))
	}
	if fallback == nil {
		fallback = []models.MediaItem{}
	}
	return fallback, nil
}

// Carousels resolves a section and groups it into carousels.
func (s *MediaService) Carousels(ctx context.Context, section string) ([]models.CarouselGroup, error) {
	const op = "media_service.Carousels"

	sec, err := models.MediaSection(section)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := s.Resolve(ctx, section, sec.Kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	groups := grouping.Group(items, sec)
	describeFromCatalog(section, groups)

	return groups, nil
}

// describeFromCatalog gives carousels whose title matches a catalog carousel
// the catalog description, before and after migration alike.
func describeFromCatalog(section string, groups []models.CarouselGroup) {
	known := catalog.Carousels(section)
	if len(known) == 0 {
		return
	}

	descriptions := make(map[string]string, len(known))
	for _, c := range known {
		if c.Description != "" {
			descriptions[strings.ToLower(c.Title)] = c.Description
		}
	}

	for i := range groups {
		if d, ok := descriptions[strings.ToLower(groups[i].Title)]; ok {
			groups[i].Description = d
		}
	}
}

// Pairs resolves a before/after section and pairs its items.
func (s *MediaService) Pairs(ctx context.Context, section string) ([]models.BeforeAfterPair, error) {
	const op = "media_service.Pairs"

	sec, err := models.MediaSection(section)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if sec.Grouping != models.GroupingBeforeAfter {
		return nil, fmt.Errorf("%s: %w", op, models.ErrWrongGrouping)
	}

	items, err := s.Resolve(ctx, section, sec.Kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pairs, overwrites := grouping.Pair(items)
	if overwrites > 0 {
		s.log.Warn("several items claim the same pair slot, keeping the last",
			slog.String("op", op),
			slog.String("section", section),
			slog.Int("overwrites", overwrites),
		)
	}

	return pairs, nil
}
