package services

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"

	"portfolio/internal/domain/models"
	"portfolio/internal/lib/logger/sl"
	"portfolio/internal/transport/http/dto"
)

// ImageStore keeps the images content records point at.
type ImageStore interface {
	Upload(ctx context.Context, input dto.MediaUploadInput) (models.MediaItem, error)
	DeleteByURL(ctx context.Context, section, url string) error
}

// WithImages enables UploadImage.
func (s *ContentService) WithImages(images ImageStore) *ContentService {
	s.images = images
	return s
}

// UploadImage stores file as the section's media and points the section
// content image at it. The image it replaces is deleted when it was a stored
// upload; catalog assets and external links are left alone.
func (s *ContentService) UploadImage(ctx context.Context, section string, file *multipart.FileHeader) (models.ContentRecord, error) {
	const op = "content_service.UploadImage"

	if s.images == nil {
		return models.ContentRecord{}, fmt.Errorf("%s: image uploads are not configured", op)
	}

	current, err := s.Get(ctx, section)
	if err != nil {
		return models.ContentRecord{}, fmt.Errorf("%s: %w", op, err)
	}
	if current.Variant == models.ContentContact {
		return models.ContentRecord{}, fmt.Errorf("%s: %w", op, &models.ValidationError{
			Errors: []string{fmt.Sprintf("section %q has no content image", section)},
		})
	}

	log := s.log.With(
		slog.String("op", op),
		slog.String("section", section),
	)

	item, err := s.images.Upload(ctx, dto.MediaUploadInput{Section: section, File: file})
	if err != nil {
		return models.ContentRecord{}, fmt.Errorf("%s: %w", op, err)
	}

	previous := setImage(&current, item.URL)
	current.IsFallback = false

	saved, err := s.repo.UpsertContent(ctx, current)
	if err != nil {
		log.Error("failed to save content image", sl.Err(err))
		if derr := s.images.DeleteByURL(ctx, section, item.URL); derr != nil {
			log.Warn("failed to remove orphaned image", slog.String("url", item.URL), sl.Err(derr))
		}
		return models.ContentRecord{}, fmt.Errorf("%s: %w", op, err)
	}

	if previous != "" && previous != item.URL {
		if err := s.images.DeleteByURL(ctx, section, previous); err != nil {
			log.Warn("failed to remove replaced image", slog.String("url", previous), sl.Err(err))
		}
	}

	log.Info("content image updated", slog.String("url", item.URL))

	return saved, nil
}

// setImage points the record's image at url and returns the old one. The
// variant struct is copied so catalog defaults stay untouched.
func setImage(rec *models.ContentRecord, url string) string {
	var previous string

	switch rec.Variant {
	case models.ContentAbout:
		about := models.AboutContent{}
		if rec.About != nil {
			about = *rec.About
		}
		previous, about.Image = about.Image, url
		rec.About = &about
	default:
		generic := models.GenericContent{}
		if rec.Generic != nil {
			generic = *rec.Generic
		}
		previous, generic.Image = generic.Image, url
		rec.Generic = &generic
	}

	return previous
}
