package mariadb

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kozaktomas/companion-backend/internal/database"
)

// ImageRepository provides MariaDB-backed face image storage.
type ImageRepository struct {
	pool *Pool
}

// NewImageRepository creates a new MariaDB image repository.
func NewImageRepository(pool *Pool) *ImageRepository {
	return &ImageRepository{pool: pool}
}

// StoreImage inserts one image row. Duplicate descriptions are allowed.
func (r *ImageRepository) StoreImage(ctx context.Context, img database.StoredImage) error {
	if img.ID == "" {
		img.ID = uuid.New().String()
	}

	query := `
		INSERT INTO images (id, description, image_data, filename, name, relation)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.pool.Exec(ctx, query, img.ID, img.Description, img.Data, img.Filename, img.Name, img.Relation)
	if err != nil {
		return fmt.Errorf("store image: %w", err)
	}
	return nil
}

// MatchImage scans stored images in insertion order and returns the first
// whose bytes equal data exactly.
func (r *ImageRepository) MatchImage(ctx context.Context, data []byte) (*database.ImageMatch, error) {
	query := `
		SELECT name, relation, description, image_data
		FROM images
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m database.ImageMatch
		var stored []byte
		if err := rows.Scan(&m.Name, &m.Relation, &m.Description, &stored); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		if bytes.Equal(stored, data) {
			return &m, nil
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate images: %w", err)
	}

	return nil, database.ErrNotFound
}

// CountImages returns the total number of stored images.
func (r *ImageRepository) CountImages(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM images").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count images: %w", err)
	}
	return count, nil
}
