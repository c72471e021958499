package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strings"

	"portfolio/internal/domain/models"
	"portfolio/internal/lib/grouping"
	"portfolio/internal/lib/logger/sl"
	"portfolio/internal/metrics"
	"portfolio/internal/repository"
	"portfolio/internal/storage"
	"portfolio/internal/storage/filestorage"
	"portfolio/internal/transport/http/dto"

	"golang.org/x/sync/errgroup"
)

// Upload stores a file in a section. Without an explicit order the item goes
// last. The original file name is kept since grouping reads it.
func (s *MediaService) Upload(ctx context.Context, input dto.MediaUploadInput) (models.MediaItem, error) {
	const op = "media_service.Upload"

	sec, err := models.MediaSection(input.Section)
	if err != nil {
		return models.MediaItem{}, fmt.Errorf("%s: %w", op, err)
	}

	log := s.log.With(
		slog.String("op", op),
		slog.String("section", sec.Name),
	)

	if err := s.checkFile(input.File, sec.Kind); err != nil {
		return models.MediaItem{}, fmt.Errorf("%s: %w", op, err)
	}

	var order int
	if input.DisplayOrder != nil {
		order = *input.DisplayOrder
	} else {
		maxOrder, err := s.repo.MaxDisplayOrder(ctx, sec.Name)
		if err != nil {
			return models.MediaItem{}, fmt.Errorf("%s: %w", op, err)
		}
		order = maxOrder + 1
	}

	item, err := s.create(ctx, sec, input.File, models.MediaItem{
		FileName:     input.File.Filename,
		DisplayOrder: order,
		GroupKey:     strings.TrimSpace(input.GroupKey),
	})
	if err != nil {
		log.Error("upload failed", sl.Err(err))
		return models.MediaItem{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("media uploaded", slog.String("id", item.ID), slog.Int("display_order", item.DisplayOrder))

	return item, nil
}

// UploadPair stores both sides of a before/after sample concurrently, named
// "<title> - before.<ext>" and "<title> - after.<ext>" after the last item.
// A side that succeeds stays stored even when the other fails.
func (s *MediaService) UploadPair(ctx context.Context, input dto.PairUploadInput) (models.BeforeAfterPair, error) {
	const op = "media_service.UploadPair"

	sec, err := models.MediaSection(input.Section)
	if err != nil {
		return models.BeforeAfterPair{}, fmt.Errorf("%s: %w", op, err)
	}
	if sec.Grouping != models.GroupingBeforeAfter {
		return models.BeforeAfterPair{}, fmt.Errorf("%s: %w", op, models.ErrWrongGrouping)
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return models.BeforeAfterPair{}, fmt.Errorf("%s: %w", op, &models.ValidationError{Errors: []string{"title is required"}})
	}
	for _, fh := range []*multipart.FileHeader{input.Before, input.After} {
		if err := s.checkFile(fh, sec.Kind); err != nil {
			return models.BeforeAfterPair{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	log := s.log.With(
		slog.String("op", op),
		slog.String("title", title),
	)

	maxOrder, err := s.repo.MaxDisplayOrder(ctx, sec.Name)
	if err != nil {
		return models.BeforeAfterPair{}, fmt.Errorf("%s: %w", op, err)
	}

	var (
		g                   errgroup.Group
		before, after       models.MediaItem
		beforeErr, afterErr error
	)

	g.Go(func() error {
		before, beforeErr = s.create(ctx, sec, input.Before, models.MediaItem{
			FileName:     pairFileName(title, models.PairRoleBefore, input.Before.Filename),
			DisplayOrder: maxOrder + 1,
			GroupKey:     title,
			PairRole:     models.PairRoleBefore,
		})
		return beforeErr
	})
	g.Go(func() error {
		after, afterErr = s.create(ctx, sec, input.After, models.MediaItem{
			FileName:     pairFileName(title, models.PairRoleAfter, input.After.Filename),
			DisplayOrder: maxOrder + 2,
			GroupKey:     title,
			PairRole:     models.PairRoleAfter,
		})
		return afterErr
	})

	if err := g.Wait(); err != nil {
		succeeded := 0
		if beforeErr == nil {
			succeeded++
		}
		if afterErr == nil {
			succeeded++
		}
		log.Error("pair upload failed", slog.Int("succeeded", succeeded), sl.Err(err))

		return models.BeforeAfterPair{}, fmt.Errorf("%s: %w", op, &models.BatchError{
			Op:        "upload pair",
			Succeeded: succeeded,
			Total:     2,
			Err:       errors.Join(beforeErr, afterErr),
		})
	}

	log.Info("pair uploaded", slog.String("before_id", before.ID), slog.String("after_id", after.ID))

	return models.BeforeAfterPair{
		ID:           before.ID,
		Key:          strings.ToLower(title),
		Title:        grouping.CapitalizeWords(title),
		Description:  grouping.PairDescription,
		Before:       &before,
		After:        &after,
		DisplayOrder: before.DisplayOrder,
	}, nil
}

func pairFileName(title string, role models.PairRole, original string) string {
	return fmt.Sprintf("%s - %s%s", title, role, strings.ToLower(filepath.Ext(original)))
}

// Replace swaps the file behind a stored item and keeps its place in the
// section. The previous blob is removed afterwards on a best-effort basis.
func (s *MediaService) Replace(ctx context.Context, id string, file *multipart.FileHeader) (models.MediaItem, error) {
	const op = "media_service.Replace"

	if models.IsFallbackID(id) {
		return models.MediaItem{}, fmt.Errorf("%s: %w", op, models.ErrFallbackItem)
	}

	current, err := s.repo.GetMediaByID(ctx, id)
	if err != nil {
		return models.MediaItem{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.checkFile(file, current.Kind); err != nil {
		return models.MediaItem{}, fmt.Errorf("%s: %w", op, err)
	}

	log := s.log.With(slog.String("op", op), slog.String("id", id))

	sec := models.Section{Name: current.Section, Kind: current.Kind}
	key, url, size, err := s.put(ctx, sec, file)
	if err != nil {
		return models.MediaItem{}, fmt.Errorf("%s: %w", op, err)
	}

	updated := current
	updated.FileName = file.Filename
	updated.URL = url
	updated.FileSize = &size

	if err := s.repo.UpdateMediaFile(ctx, updated); err != nil {
		s.dropBlob(ctx, log, s.cfg.Buckets.For(sec.Kind), key)
		return models.MediaItem{}, fmt.Errorf("%s: %w", op, err)
	}

	s.removeBlob(ctx, log, current)
	log.Info("media replaced")

	return updated, nil
}

// Delete removes a stored item. The row goes first since it is what the site
// renders; the blob is removed afterwards on a best-effort basis. Deleting an
// item that does not exist succeeds.
func (s *MediaService) Delete(ctx context.Context, id string) error {
	const op = "media_service.Delete"

	if models.IsFallbackID(id) {
		return fmt.Errorf("%s: %w", op, models.ErrFallbackItem)
	}

	log := s.log.With(slog.String("op", op), slog.String("id", id))

	item, err := s.repo.GetMediaByID(ctx, id)
	if errors.Is(err, storage.ErrMediaNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.DeleteMedia(ctx, id); err != nil && !errors.Is(err, storage.ErrMediaNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.removeBlob(ctx, log, item)
	log.Info("media deleted")

	return nil
}

// DeleteByURL deletes the stored item of a section that serves url. URLs no
// stored item serves, such as catalog assets or external links, are ignored.
func (s *MediaService) DeleteByURL(ctx context.Context, section, url string) error {
	const op = "media_service.DeleteByURL"

	if url == "" {
		return nil
	}

	items, err := s.repo.ListMedia(ctx, repository.MediaFilter{Section: section})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, item := range items {
		if strings.EqualFold(item.URL, url) {
			if err := s.Delete(ctx, item.ID); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			return nil
		}
	}

	return nil
}

// DeleteMany deletes each id independently and reports how many are gone.
func (s *MediaService) DeleteMany(ctx context.Context, ids []string) (dto.DeleteManyResult, error) {
	const op = "media_service.DeleteMany"

	log := s.log.With(slog.String("op", op))
	res := dto.DeleteManyResult{Requested: len(ids)}

	stored, err := s.repo.GetMediaByIDs(ctx, ids)
	if err != nil {
		return res, fmt.Errorf("%s: %w", op, err)
	}
	byID := make(map[string]models.MediaItem, len(stored))
	for _, item := range stored {
		byID[item.ID] = item
	}

	var errs []error
	for _, id := range ids {
		if models.IsFallbackID(id) {
			errs = append(errs, fmt.Errorf("%s: %w", id, models.ErrFallbackItem))
			continue
		}

		item, ok := byID[id]
		if !ok {
			res.Deleted++
			continue
		}

		if err := s.repo.DeleteMedia(ctx, id); err != nil && !errors.Is(err, storage.ErrMediaNotFound) {
			log.Error("failed to delete media", slog.String("id", id), sl.Err(err))
			errs = append(errs, err)
			continue
		}
		delete(byID, id)
		res.Deleted++

		s.removeBlob(ctx, log, item)
	}

	if len(errs) > 0 {
		return res, fmt.Errorf("%s: %w", op, &models.BatchError{
			Op:        "delete",
			Succeeded: res.Deleted,
			Total:     res.Requested,
			Err:       errors.Join(errs...),
		})
	}

	return res, nil
}

func (s *MediaService) checkFile(file *multipart.FileHeader, kind models.MediaKind) error {
	if file == nil {
		return &models.ValidationError{Errors: []string{"file is required"}}
	}
	if file.Size == 0 {
		return models.ErrEmptyFile
	}
	if s.cfg.MaxFileSize > 0 && file.Size > s.cfg.MaxFileSize {
		return storage.ErrFileTooLarge
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), kind.MimePrefix()) {
		return fmt.Errorf("%w: expected %s*", models.ErrInvalidFileType, kind.MimePrefix())
	}
	return nil
}

// create stores the blob and inserts the row, removing the blob again when
// the insert fails.
func (s *MediaService) create(ctx context.Context, sec models.Section, file *multipart.FileHeader, item models.MediaItem) (models.MediaItem, error) {
	key, url, size, err := s.put(ctx, sec, file)
	if err != nil {
		metrics.MediaUploads.WithLabelValues(sec.Name, "error").Inc()
		return models.MediaItem{}, err
	}

	item.Section = sec.Name
	item.Kind = sec.Kind
	item.URL = url
	item.FileSize = &size

	created, err := s.repo.CreateMedia(ctx, item)
	if err != nil {
		s.dropBlob(ctx, s.log, s.cfg.Buckets.For(sec.Kind), key)
		metrics.MediaUploads.WithLabelValues(sec.Name, "error").Inc()
		return models.MediaItem{}, err
	}

	metrics.MediaUploads.WithLabelValues(sec.Name, "ok").Inc()
	return created, nil
}

// put writes the file under "<section>/<unix-ms>-<rand><ext>" in the bucket of
// the section's kind.
func (s *MediaService) put(ctx context.Context, sec models.Section, file *multipart.FileHeader) (key, url string, size int64, err error) {
	bucket := s.cfg.Buckets.For(sec.Kind)
	key = fmt.Sprintf("%s/%d-%s%s", sec.Name, s.now().UnixMilli(), s.randKey(), strings.ToLower(filepath.Ext(file.Filename)))

	src, err := file.Open()
	if err != nil {
		return "", "", 0, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	size, err = s.files.Save(ctx, filestorage.Object{
		Bucket:      bucket,
		Key:         key,
		Body:        src,
		Size:        file.Size,
		ContentType: file.Header.Get("Content-Type"),
	})
	if err != nil {
		return "", "", 0, err
	}

	return key, s.files.PublicURL(bucket, key), size, nil
}

// removeBlob deletes the blob behind a stored item when this storage owns its
// URL. Bundled catalog assets are left alone.
func (s *MediaService) removeBlob(ctx context.Context, log *slog.Logger, item models.MediaItem) {
	bucket := s.cfg.Buckets.For(item.Kind)
	key, ok := s.files.KeyFromURL(bucket, item.URL)
	if !ok {
		return
	}
	s.dropBlob(ctx, log, bucket, key)
}

func (s *MediaService) dropBlob(ctx context.Context, log *slog.Logger, bucket, key string) {
	if err := s.files.Delete(ctx, bucket, key); err != nil && !errors.Is(err, storage.ErrFileNotFound) {
		log.Warn("failed to delete blob", slog.String("bucket", bucket), slog.String("key", key), sl.Err(err))
	}
}
