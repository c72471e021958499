package dto

import "encoding/json"

// ContentSaveRequest carries the raw variant payload for a section.
type ContentSaveRequest struct {
	Content json.RawMessage `json:"content" validate:"required"`
}
