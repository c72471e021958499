package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"portfolio/internal/domain/models"
	"portfolio/internal/lib/logger/sl"
	"portfolio/internal/storage"

	"github.com/google/uuid"
)

// GroupStride separates the orders of consecutive carousels.
const GroupStride = 1000

// Reorder writes new display orders. Catalog ids and ids that cannot belong
// to a stored item are dropped first; rows that no longer exist are skipped.
// Writes are independent: when some fail the others stay applied and a
// *models.BatchError reports how many succeeded.
func (s *MediaService) Reorder(ctx context.Context, updates []models.OrderUpdate) (int, error) {
	const op = "media_service.Reorder"

	log := s.log.With(slog.String("op", op))

	valid := make([]models.OrderUpdate, 0, len(updates))
	for _, u := range updates {
		if models.IsFallbackID(u.ID) {
			continue
		}
		if _, err := uuid.Parse(u.ID); err != nil {
			continue
		}
		valid = append(valid, u)
	}
	if len(valid) == 0 {
		return 0, nil
	}

	var (
		applied int
		errs    []error
	)
	for _, u := range valid {
		err := s.repo.UpdateDisplayOrder(ctx, u.ID, u.DisplayOrder)
		switch {
		case err == nil:
			applied++
		case errors.Is(err, storage.ErrMediaNotFound):
			log.Debug("skipping order of missing item", slog.String("id", u.ID))
			applied++
		default:
			log.Error("failed to update display order", slog.String("id", u.ID), sl.Err(err))
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return applied, fmt.Errorf("%s: %w", op, &models.BatchError{
			Op:        "reorder",
			Succeeded: applied,
			Total:     len(valid),
			Err:       errors.Join(errs...),
		})
	}

	return applied, nil
}

// Move reorders a section from the id sequence shown in the admin console.
// Carousel sections take one slice per carousel; other sections are flattened.
func (s *MediaService) Move(ctx context.Context, section string, groups [][]string) (int, error) {
	const op = "media_service.Move"

	sec, err := models.MediaSection(section)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var updates []models.OrderUpdate
	if sec.Grouping == models.GroupingCarousel {
		updates = MoveGroup(groups)
	} else {
		var ids []string
		for _, g := range groups {
			ids = append(ids, g...)
		}
		updates = SequenceOrders(ids)
	}

	return s.Reorder(ctx, updates)
}

// MoveGroup assigns groupIndex*GroupStride + itemIndex so carousels never
// interleave after regrouping.
func MoveGroup(groups [][]string) []models.OrderUpdate {
	var out []models.OrderUpdate
	for gi, ids := range groups {
		for ii, id := range ids {
			out = append(out, models.OrderUpdate{ID: id, DisplayOrder: gi*GroupStride + ii})
		}
	}
	return out
}

// SequenceOrders assigns each id its position.
func SequenceOrders(ids []string) []models.OrderUpdate {
	out := make([]models.OrderUpdate, 0, len(ids))
	for i, id := range ids {
		out = append(out, models.OrderUpdate{ID: id, DisplayOrder: i})
	}
	return out
}
