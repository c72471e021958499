package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type ContentVariant string

const (
	ContentAbout   ContentVariant = "about"
	ContentContact ContentVariant = "contact"
	ContentGeneric ContentVariant = "generic"
)

// VariantFor returns the content shape stored for a section.
func VariantFor(section string) ContentVariant {
	switch section {
	case SectionAbout:
		return ContentAbout
	case SectionContact:
		return ContentContact
	default:
		return ContentGeneric
	}
}

type AboutContent struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

type SocialLink struct {
	Icon  string `json:"icon"`
	Href  string `json:"href"`
	Label string `json:"label"`
}

type ContactContent struct {
	Email       string       `json:"email,omitempty"`
	Phone       string       `json:"phone,omitempty"`
	SocialLinks []SocialLink `json:"socialLinks,omitempty"`
}

type GenericContent struct {
	Title       string `json:"title,omitempty"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// ContentRecord holds the structured text of one section. Exactly one of
// About, Contact or Generic is set, matching Variant.
type ContentRecord struct {
	Section    string
	Variant    ContentVariant
	About      *AboutContent
	Contact    *ContactContent
	Generic    *GenericContent
	UpdatedAt  time.Time
	IsFallback bool
}

type contentRecordJSON struct {
	Section    string          `json:"section_name"`
	Variant    ContentVariant  `json:"variant"`
	Content    json.RawMessage `json:"content"`
	UpdatedAt  *time.Time      `json:"updated_at,omitempty"`
	IsFallback bool            `json:"is_fallback"`
}

// Payload returns the populated variant.
func (r ContentRecord) Payload() any {
	switch r.Variant {
	case ContentAbout:
		return r.About
	case ContentContact:
		return r.Contact
	default:
		return r.Generic
	}
}

// MarshalPayload encodes the populated variant as it is stored in the content column.
func (r ContentRecord) MarshalPayload() ([]byte, error) {
	return json.Marshal(r.Payload())
}

func (r ContentRecord) MarshalJSON() ([]byte, error) {
	payload, err := r.MarshalPayload()
	if err != nil {
		return nil, err
	}

	out := contentRecordJSON{
		Section:    r.Section,
		Variant:    r.Variant,
		Content:    payload,
		IsFallback: r.IsFallback,
	}
	if !r.UpdatedAt.IsZero() {
		out.UpdatedAt = &r.UpdatedAt
	}
	return json.Marshal(out)
}

// DecodeContent builds a record for section from its stored JSON payload.
// Unknown fields are rejected so a payload for one variant cannot be saved
// under another.
func DecodeContent(section string, raw []byte) (ContentRecord, error) {
	rec := ContentRecord{
		Section: section,
		Variant: VariantFor(section),
	}

	if len(raw) == 0 || string(raw) == "null" {
		raw = []byte("{}")
	}

	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.DisallowUnknownFields()

	var err error
	switch rec.Variant {
	case ContentAbout:
		rec.About = &AboutContent{}
		err = dec.Decode(rec.About)
	case ContentContact:
		rec.Contact = &ContactContent{}
		err = dec.Decode(rec.Contact)
	default:
		rec.Generic = &GenericContent{}
		err = dec.Decode(rec.Generic)
	}
	if err != nil {
		return ContentRecord{}, &ValidationError{Errors: []string{fmt.Sprintf("invalid %s content: %v", rec.Variant, err)}}
	}

	return rec, nil
}

// Validate checks the populated variant.
func (r ContentRecord) Validate() error {
	var errs []string

	if strings.TrimSpace(r.Section) == "" {
		errs = append(errs, "section is required")
	}
	if r.Variant != VariantFor(r.Section) {
		errs = append(errs, fmt.Sprintf("section %q stores %s content, got %s", r.Section, VariantFor(r.Section), r.Variant))
	}

	switch r.Variant {
	case ContentAbout:
		if r.About == nil {
			errs = append(errs, "about content is required")
		} else if strings.TrimSpace(r.About.Title) == "" {
			errs = append(errs, "title is required")
		}
	case ContentContact:
		if r.Contact == nil {
			errs = append(errs, "contact content is required")
			break
		}
		if r.Contact.Email != "" {
			if !ValidEmail(r.Contact.Email) {
				errs = append(errs, "email is invalid")
			}
		}
		for i, link := range r.Contact.SocialLinks {
			if strings.TrimSpace(link.Href) == "" {
				errs = append(errs, fmt.Sprintf("social link %d: href is required", i))
			}
		}
	default:
		if r.Generic == nil {
			errs = append(errs, "content is required")
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
