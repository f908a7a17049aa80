package postgres

import (
	"context"
	"database/sql"

	"inviteapi/internal/domain"
)

type photoRepository struct {
	DB *sql.DB
}

func NewPhotoRepository(db *sql.DB) domain.PhotoRepository {
	return &photoRepository{DB: db}
}

func (r *photoRepository) Create(ctx context.Context, photo *domain.Photo) error {
	query := `
		INSERT INTO photos (id, file_name, uploaded_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.DB.ExecContext(ctx, query, photo.ID, photo.FileName, photo.UploadedAt)
	return err
}

func (r *photoRepository) List(ctx context.Context) ([]*domain.Photo, error) {
	query := `
		SELECT id, file_name, uploaded_at
		FROM photos
		ORDER BY uploaded_at DESC, id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []*domain.Photo
	for rows.Next() {
		p := &domain.Photo{}
		if err := rows.Scan(&p.ID, &p.FileName, &p.UploadedAt); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if photos == nil {
		photos = []*domain.Photo{}
	}
	return photos, nil
}
