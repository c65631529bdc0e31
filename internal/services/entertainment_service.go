package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/avelasquez/entertainment-api/internal/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no entry exists for a given ID.
var ErrNotFound = errors.New("entry not found")

// EntertainmentServiceProvider defines the interface for entertainment services.
type EntertainmentServiceProvider interface {
	GetAll() ([]models.Entertainment, error)
	GetByID(id string) (models.Entertainment, error)
	Create(entry models.Entertainment) (models.Entertainment, error)
	Update(id string, patch models.EntertainmentPatch) (models.Entertainment, error)
	Delete(id string) (models.Entertainment, error)
}

// EntertainmentService provides CRUD logic for catalog entries.
type EntertainmentService struct {
	db *sql.DB
}

// NewEntertainmentService creates a new EntertainmentService.
func NewEntertainmentService(db *sql.DB) *EntertainmentService {
	return &EntertainmentService{db: db}
}

const entertainmentColumns = "id, name, publication_date, genre_json, type, details_json, rating, img_url, created_at"

// scanEntertainment is a helper to scan an entry from a row or rows object.
func scanEntertainment(scanner interface{ Scan(...interface{}) error }) (models.Entertainment, error) {
	var e models.Entertainment
	var pubDate, genreJSON, detailsJSON, createdAt string
	var rating sql.NullFloat64
	var imgURL sql.NullString

	err := scanner.Scan(&e.ID, &e.Name, &pubDate, &genreJSON, &e.Type, &detailsJSON, &rating, &imgURL, &createdAt)
	if err != nil {
		return e, err
	}

	if t, err := time.Parse("2006-01-02", pubDate); err == nil {
		e.PublicationDate = models.Date{Time: t}
	}
	if err := json.Unmarshal([]byte(genreJSON), &e.Genre); err != nil {
		return e, err
	}
	if err := json.Unmarshal([]byte(detailsJSON), &e.Details); err != nil {
		return e, err
	}
	if rating.Valid {
		e.Rating = &rating.Float64
	}
	e.ImgURL = imgURL.String
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return e, nil
}

// GetAll retrieves every entry in insertion order.
func (s *EntertainmentService) GetAll() ([]models.Entertainment, error) {
	rows, err := s.db.Query("SELECT " + entertainmentColumns + " FROM entertainment")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.Entertainment{}
	for rows.Next() {
		e, err := scanEntertainment(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetByID retrieves a single entry.
func (s *EntertainmentService) GetByID(id string) (models.Entertainment, error) {
	row := s.db.QueryRow("SELECT "+entertainmentColumns+" FROM entertainment WHERE id = ?", id)
	e, err := scanEntertainment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Entertainment{}, ErrNotFound
		}
		return models.Entertainment{}, err
	}
	return e, nil
}

// Create validates and persists a new entry, assigning it a fresh ID.
func (s *EntertainmentService) Create(entry models.Entertainment) (models.Entertainment, error) {
	if err := entry.Validate(); err != nil {
		return models.Entertainment{}, err
	}

	entry.ID = uuid.New().String()
	entry.CreatedAt = time.Now().UTC()

	genreJSON, err := json.Marshal(entry.Genre)
	if err != nil {
		return models.Entertainment{}, err
	}
	detailsJSON, err := json.Marshal(entry.Details)
	if err != nil {
		return models.Entertainment{}, err
	}

	var rating interface{}
	if entry.Rating != nil {
		rating = *entry.Rating
	}

	_, err = s.db.Exec(
		"INSERT INTO entertainment("+entertainmentColumns+") VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)",
		entry.ID, entry.Name, entry.PublicationDate.Format("2006-01-02"),
		string(genreJSON), entry.Type, string(detailsJSON),
		rating, entry.ImgURL, entry.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return models.Entertainment{}, err
	}
	return entry, nil
}

// Update applies a partial update to an existing entry. The patched entry is
// re-validated before anything is written, so a bad patch leaves the stored
// row untouched.
func (s *EntertainmentService) Update(id string, patch models.EntertainmentPatch) (models.Entertainment, error) {
	entry, err := s.GetByID(id)
	if err != nil {
		return models.Entertainment{}, err
	}

	entry.Apply(patch)
	if err := entry.Validate(); err != nil {
		return models.Entertainment{}, err
	}

	genreJSON, err := json.Marshal(entry.Genre)
	if err != nil {
		return models.Entertainment{}, err
	}
	detailsJSON, err := json.Marshal(entry.Details)
	if err != nil {
		return models.Entertainment{}, err
	}

	var rating interface{}
	if entry.Rating != nil {
		rating = *entry.Rating
	}

	_, err = s.db.Exec(
		"UPDATE entertainment SET name = ?, publication_date = ?, genre_json = ?, type = ?, details_json = ?, rating = ?, img_url = ? WHERE id = ?",
		entry.Name, entry.PublicationDate.Format("2006-01-02"),
		string(genreJSON), entry.Type, string(detailsJSON),
		rating, entry.ImgURL, id,
	)
	if err != nil {
		return models.Entertainment{}, err
	}
	return entry, nil
}

// Delete removes an entry and returns it.
func (s *EntertainmentService) Delete(id string) (models.Entertainment, error) {
	entry, err := s.GetByID(id)
	if err != nil {
		return models.Entertainment{}, err
	}
	if _, err := s.db.Exec("DELETE FROM entertainment WHERE id = ?", id); err != nil {
		return models.Entertainment{}, err
	}
	return entry, nil
}
