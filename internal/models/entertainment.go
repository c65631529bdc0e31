package models

import (
	"fmt"
	"strings"
	"time"
)

// Entertainment types accepted by the API.
const (
	TypeBook  = "book"
	TypeMovie = "movie"
	TypeShow  = "show"
	TypeGame  = "game"
)

var validTypes = map[string]bool{
	TypeBook:  true,
	TypeMovie: true,
	TypeShow:  true,
	TypeGame:  true,
}

// Date is a calendar date that accepts both "2006-01-02" and RFC 3339 input
// and always renders as "2006-01-02".
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// Entertainment represents a single catalog entry: a book, movie, show or game.
// Details is a free-form object whose shape varies by type.
type Entertainment struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	PublicationDate Date                   `json:"publicationDate"`
	Genre           []string               `json:"genre"`
	Type            string                 `json:"type"`
	Details         map[string]interface{} `json:"details"`
	Rating          *float64               `json:"rating,omitempty"`
	ImgURL          string                 `json:"img_url,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
}

// EntertainmentPatch carries a partial update; nil fields are left unchanged.
type EntertainmentPatch struct {
	Name            *string                 `json:"name"`
	PublicationDate *Date                   `json:"publicationDate"`
	Genre           *[]string               `json:"genre"`
	Type            *string                 `json:"type"`
	Details         *map[string]interface{} `json:"details"`
	Rating          *float64                `json:"rating"`
	ImgURL          *string                 `json:"img_url"`
}

// ValidationError describes a rejected entry.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validate checks the required-field and range rules. It is run on create and
// again after a patch is applied, so partial updates cannot leave an entry in
// an invalid state.
func (e *Entertainment) Validate() error {
	if e.Name == "" {
		return &ValidationError{Msg: "name is required"}
	}
	if e.PublicationDate.IsZero() {
		return &ValidationError{Msg: "publicationDate is required"}
	}
	if len(e.Genre) == 0 {
		return &ValidationError{Msg: "genre is required"}
	}
	if !validTypes[e.Type] {
		return &ValidationError{Msg: fmt.Sprintf("type must be one of book, movie, show, game; got %q", e.Type)}
	}
	if e.Details == nil {
		return &ValidationError{Msg: "details is required"}
	}
	if e.Rating != nil && (*e.Rating < 0 || *e.Rating > 10) {
		return &ValidationError{Msg: "rating must be between 0 and 10"}
	}
	return nil
}

// Apply overwrites the entry's fields with the non-nil fields of the patch.
func (e *Entertainment) Apply(p EntertainmentPatch) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.PublicationDate != nil {
		e.PublicationDate = *p.PublicationDate
	}
	if p.Genre != nil {
		e.Genre = *p.Genre
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Details != nil {
		e.Details = *p.Details
	}
	if p.Rating != nil {
		e.Rating = p.Rating
	}
	if p.ImgURL != nil {
		e.ImgURL = *p.ImgURL
	}
}
