package dto

import (
	"mime/multipart"

	"portfolio/internal/domain/models"
)

// MediaUploadInput is one file destined for a section.
type MediaUploadInput struct {
	Section      string                `json:"section_name" validate:"required"`
	File         *multipart.FileHeader `json:"-" form:"file" validate:"required"`
	DisplayOrder *int                  `json:"display_order,omitempty" form:"display_order" validate:"omitempty,min=0"`
	GroupKey     string                `json:"group_key,omitempty" form:"group_key" validate:"max=200"`
}

// PairUploadInput uploads both sides of a before/after sample at once.
type PairUploadInput struct {
	Section string                `json:"section_name" validate:"required"`
	Title   string                `json:"title" form:"title" validate:"required,max=200"`
	Before  *multipart.FileHeader `json:"-" form:"before" validate:"required"`
	After   *multipart.FileHeader `json:"-" form:"after" validate:"required"`
}

type ReorderRequest struct {
	Updates []models.OrderUpdate `json:"updates" validate:"required,dive"`
}

// MoveRequest lists item ids in their new display sequence, one slice per
// carousel for carousel sections.
type MoveRequest struct {
	Groups [][]string `json:"groups" validate:"required,min=1"`
}

type DeleteManyRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

type DeleteManyResult struct {
	Requested int `json:"requested"`
	Deleted   int `json:"deleted"`
}

type MigrateResult struct {
	Section  string `json:"section_name"`
	Migrated bool   `json:"migrated"`
}

type SectionMediaResponse struct {
	Section    string             `json:"section_name"`
	Kind       models.MediaKind   `json:"media_type"`
	IsFallback bool               `json:"is_fallback"`
	Items      []models.MediaItem `json:"items"`
}
