// Package state tracks which recipe images have already been processed, so
// batch runs are resumable and re-runs skip finished work. The ledger is a
// local SQLite database keyed by image file name.
package state

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Record is one ledger entry for a processed image.
type Record struct {
	ImageName       string
	RecipeTitle     string
	Success         bool
	OCRMethod       string
	ImagesGenerated bool
	ProcessedAt     time.Time
}

// Ledger persists processing state for recipe images.
type Ledger struct {
	db *sql.DB
}

// Open opens (or creates) the ledger database at path.
func Open(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize state schema: %w", err)
	}
	return l, nil
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS processed_images (
		image_name       TEXT PRIMARY KEY,
		recipe_title     TEXT NOT NULL DEFAULT '',
		success          INTEGER NOT NULL DEFAULT 0,
		ocr_method       TEXT NOT NULL DEFAULT '',
		images_generated INTEGER NOT NULL DEFAULT 0,
		processed_at     DATETIME NOT NULL
	);
	`
	_, err := l.db.Exec(schema)
	return err
}

// MarkProcessed records the outcome of processing one image. Reprocessing the
// same image overwrites the previous entry but keeps its images_generated
// flag.
func (l *Ledger) MarkProcessed(imageName, recipeTitle, ocrMethod string, success bool) error {
	_, err := l.db.Exec(`
		INSERT INTO processed_images (image_name, recipe_title, success, ocr_method, processed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(image_name) DO UPDATE SET
			recipe_title = excluded.recipe_title,
			success      = excluded.success,
			ocr_method   = excluded.ocr_method,
			processed_at = excluded.processed_at`,
		imageName, recipeTitle, success, ocrMethod, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to mark image processed: %w", err)
	}
	return nil
}

// IsProcessed reports whether an image has a successful ledger entry.
func (l *Ledger) IsProcessed(imageName string) (bool, error) {
	var success bool
	err := l.db.QueryRow(
		`SELECT success FROM processed_images WHERE image_name = ?`, imageName).Scan(&success)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query image state: %w", err)
	}
	return success, nil
}

// MarkImagesGenerated flags an image's product photos as generated.
func (l *Ledger) MarkImagesGenerated(imageName string) error {
	res, err := l.db.Exec(
		`UPDATE processed_images SET images_generated = 1 WHERE image_name = ?`, imageName)
	if err != nil {
		return fmt.Errorf("failed to mark images generated: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("no ledger entry for image %q", imageName)
	}
	return nil
}

// HasImagesGenerated reports whether product photos exist for an image.
func (l *Ledger) HasImagesGenerated(imageName string) (bool, error) {
	var generated bool
	err := l.db.QueryRow(
		`SELECT images_generated FROM processed_images WHERE image_name = ?`, imageName).Scan(&generated)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query image state: %w", err)
	}
	return generated, nil
}

// Get returns the ledger entry for an image, or nil when none exists.
func (l *Ledger) Get(imageName string) (*Record, error) {
	var r Record
	err := l.db.QueryRow(`
		SELECT image_name, recipe_title, success, ocr_method, images_generated, processed_at
		FROM processed_images WHERE image_name = ?`, imageName).
		Scan(&r.ImageName, &r.RecipeTitle, &r.Success, &r.OCRMethod, &r.ImagesGenerated, &r.ProcessedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger entry: %w", err)
	}
	return &r, nil
}

// List returns all ledger entries ordered by image name.
func (l *Ledger) List() ([]Record, error) {
	rows, err := l.db.Query(`
		SELECT image_name, recipe_title, success, ocr_method, images_generated, processed_at
		FROM processed_images ORDER BY image_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ImageName, &r.RecipeTitle, &r.Success, &r.OCRMethod, &r.ImagesGenerated, &r.ProcessedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
