// Package memory implements the repositories over process memory. It backs
// the "memory" store driver used for local runs and service tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"portfolio/internal/domain/models"
	"portfolio/internal/repository"
	"portfolio/internal/storage"

	"github.com/google/uuid"
)

type mediaRecord struct {
	item models.MediaItem
	seq  int64
}

type Store struct {
	mu sync.RWMutex

	media    map[string]mediaRecord
	content  map[string]models.ContentRecord
	messages map[string]models.ContactMessage
	admins   map[string]models.Admin
	seq      int64

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		media:    make(map[string]mediaRecord),
		content:  make(map[string]models.ContentRecord),
		messages: make(map[string]models.ContactMessage),
		admins:   make(map[string]models.Admin),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

var (
	_ repository.MediaRepository   = (*Store)(nil)
	_ repository.ContentRepository = (*Store)(nil)
	_ repository.ContactRepository = (*Store)(nil)
	_ repository.AdminRepository   = (*Store)(nil)
)

func (s *Store) CreateMedia(_ context.Context, item models.MediaItem) (models.MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insertMedia(item), nil
}

func (s *Store) CreateMediaBatch(_ context.Context, items []models.MediaItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		s.insertMedia(item)
	}
	return nil
}

func (s *Store) insertMedia(item models.MediaItem) models.MediaItem {
	if _, err := uuid.Parse(item.ID); err != nil {
		item.ID = uuid.NewString()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = s.now()
	}
	item.IsFallback = false

	s.seq++
	s.media[item.ID] = mediaRecord{item: item, seq: s.seq}
	return item
}

func (s *Store) GetMediaByID(_ context.Context, id string) (models.MediaItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.media[strings.TrimSpace(id)]
	if !ok {
		return models.MediaItem{}, storage.ErrMediaNotFound
	}
	return rec.item, nil
}

func (s *Store) GetMediaByIDs(_ context.Context, ids []string) ([]models.MediaItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.MediaItem
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if rec, ok := s.media[id]; ok {
			out = append(out, rec.item)
		}
	}
	return out, nil
}

func (s *Store) ListMedia(_ context.Context, filter repository.MediaFilter) ([]models.MediaItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]mediaRecord, 0)
	for _, rec := range s.media {
		if rec.item.Section != filter.Section {
			continue
		}
		if filter.Kind != "" && rec.item.Kind != filter.Kind {
			continue
		}
		recs = append(recs, rec)
	}

	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.item.DisplayOrder != b.item.DisplayOrder {
			return a.item.DisplayOrder < b.item.DisplayOrder
		}
		if !a.item.CreatedAt.Equal(b.item.CreatedAt) {
			return a.item.CreatedAt.Before(b.item.CreatedAt)
		}
		return a.seq < b.seq
	})

	items := make([]models.MediaItem, 0, len(recs))
	for _, rec := range recs {
		items = append(items, rec.item)
	}
	return items, nil
}

func (s *Store) ListMediaURLs(_ context.Context, section string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var urls []string
	for _, rec := range s.media {
		if rec.item.Section == section {
			urls = append(urls, rec.item.URL)
		}
	}
	return urls, nil
}

func (s *Store) MaxDisplayOrder(_ context.Context, section string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	maxOrder := -1
	for _, rec := range s.media {
		if rec.item.Section == section && rec.item.DisplayOrder > maxOrder {
			maxOrder = rec.item.DisplayOrder
		}
	}
	return maxOrder, nil
}

func (s *Store) UpdateDisplayOrder(_ context.Context, id string, order int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.media[id]
	if !ok {
		return storage.ErrMediaNotFound
	}
	rec.item.DisplayOrder = order
	s.media[id] = rec
	return nil
}

func (s *Store) UpdateMediaFile(_ context.Context, item models.MediaItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.media[item.ID]
	if !ok {
		return storage.ErrMediaNotFound
	}
	rec.item.FileName = item.FileName
	rec.item.URL = item.URL
	rec.item.FileSize = item.FileSize
	s.media[item.ID] = rec
	return nil
}

func (s *Store) DeleteMedia(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.media[id]; !ok {
		return storage.ErrMediaNotFound
	}
	delete(s.media, id)
	return nil
}

func (s *Store) GetContent(_ context.Context, section string) (models.ContentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.content[section]
	if !ok {
		return models.ContentRecord{}, storage.ErrContentNotFound
	}
	return rec, nil
}

func (s *Store) UpsertContent(_ context.Context, rec models.ContentRecord) (models.ContentRecord, error) {
	payload, err := rec.MarshalPayload()
	if err != nil {
		return models.ContentRecord{}, err
	}
	// Round trip through JSON so callers cannot mutate what is stored.
	stored, err := models.DecodeContent(rec.Section, payload)
	if err != nil {
		return models.ContentRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored.UpdatedAt = s.now()
	s.content[rec.Section] = stored
	return stored, nil
}

func (s *Store) ListContent(_ context.Context) ([]models.ContentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ContentRecord, 0, len(s.content))
	for _, rec := range s.content {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Section < out[j].Section })
	return out, nil
}

func (s *Store) CreateMessage(_ context.Context, msg models.ContactMessage) (models.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg.ID = uuid.NewString()
	msg.Read = false
	msg.CreatedAt = s.now()
	s.messages[msg.ID] = msg
	return msg, nil
}

func (s *Store) ListMessages(_ context.Context) ([]models.ContactMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ContactMessage, 0, len(s.messages))
	for _, m := range s.messages {
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) CountUnread(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, m := range s.messages {
		if !m.Read {
			n++
		}
	}
	return n, nil
}

func (s *Store) MarkRead(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.messages[id]
	if !ok {
		return storage.ErrMessageNotFound
	}
	m.Read = true
	s.messages[id] = m
	return nil
}

func (s *Store) DeleteMessage(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.messages[id]; !ok {
		return storage.ErrMessageNotFound
	}
	delete(s.messages, id)
	return nil
}

func (s *Store) SaveAdmin(_ context.Context, admin models.Admin) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(admin.Email))
	if _, exists := s.admins[email]; exists {
		return uuid.Nil, storage.ErrAdminExists
	}
	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}
	admin.Email = email
	admin.CreatedAt = s.now()
	s.admins[email] = admin
	return admin.ID, nil
}

func (s *Store) AdminByEmail(_ context.Context, email string) (models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	admin, ok := s.admins[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return models.Admin{}, storage.ErrAdminNotFound
	}
	return admin, nil
}
