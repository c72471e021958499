package models

import (
	"strings"
	"time"
)

type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

// Valid reports whether k is one of the supported media kinds.
func (k MediaKind) Valid() bool {
	return k == MediaKindImage || k == MediaKindVideo
}

// MimePrefix returns the MIME type prefix an uploaded file must carry for k.
func (k MediaKind) MimePrefix() string {
	return string(k) + "/"
}

// PairRole marks which side of a before/after pair an item fills.
type PairRole string

const (
	PairRoleNone   PairRole = ""
	PairRoleBefore PairRole = "before"
	PairRoleAfter  PairRole = "after"
)

// FallbackIDPrefix prefixes the synthetic ids of items built from the
// hardcoded catalog. Such ids never reach the store.
const FallbackIDPrefix = "hardcoded-"

// MediaItem is one image or video shown in a portfolio section.
type MediaItem struct {
	ID           string    `json:"id" db:"id"`
	Section      string    `json:"section_name" db:"section_name"`
	FileName     string    `json:"file_name" db:"file_name"`
	URL          string    `json:"file_url" db:"file_url"`
	Kind         MediaKind `json:"file_type" db:"file_type"`
	FileSize     *int64    `json:"file_size,omitempty" db:"file_size"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
	GroupKey     string    `json:"group_key,omitempty" db:"group_key"`
	PairRole     PairRole  `json:"pair_role,omitempty" db:"pair_role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// IsFallback is set on items synthesized from the catalog and is never persisted.
	IsFallback bool `json:"is_fallback"`
}

// IsFallbackID reports whether id belongs to a synthesized catalog item.
func IsFallbackID(id string) bool {
	return strings.HasPrefix(id, FallbackIDPrefix)
}

// CarouselGroup is a derived, ordered set of items shown as one swipeable carousel.
type CarouselGroup struct {
	ID          int         `json:"carousel_id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Items       []MediaItem `json:"images"`
	IsFallback  bool        `json:"is_fallback"`
}

// BeforeAfterPair is a derived pair of editing samples sharing a base name.
type BeforeAfterPair struct {
	ID           string     `json:"id"`
	Key          string     `json:"key"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Before       *MediaItem `json:"before_image"`
	After        *MediaItem `json:"after_image"`
	DisplayOrder int        `json:"display_order"`
	IsFallback   bool       `json:"is_fallback"`
}

// OrderUpdate assigns a new display order to a stored item.
type OrderUpdate struct {
	ID           string `json:"id" validate:"required"`
	DisplayOrder int    `json:"display_order" validate:"min=0"`
}
