package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/repository"
)

type interestRepository struct {
	db *sqlx.DB
}

func NewInterestRepository(db *sqlx.DB) repository.InterestRepository {
	return &interestRepository{db: db}
}

func (r *interestRepository) Create(ctx context.Context, interest *domain.Interest) error {
	query := `
		INSERT INTO interests (parent_id, name, category, level, is_custom, icon, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		interest.ParentID, interest.Name, interest.Category, interest.Level,
		interest.IsCustom, interest.Icon, interest.Description,
	).Scan(&interest.ID, &interest.CreatedAt)
}

func (r *interestRepository) GetByID(ctx context.Context, id int) (*domain.Interest, error) {
	var interest domain.Interest
	query := `SELECT * FROM interests WHERE id = $1`
	err := r.db.GetContext(ctx, &interest, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInterestNotFound
		}
		return nil, err
	}
	return &interest, nil
}

func (r *interestRepository) ListRoots(ctx context.Context) ([]*domain.Interest, error) {
	var interests []*domain.Interest
	query := `SELECT * FROM interests WHERE parent_id IS NULL ORDER BY category, name`
	err := r.db.SelectContext(ctx, &interests, query)
	return interests, err
}

func (r *interestRepository) ListChildren(ctx context.Context, parentID int) ([]*domain.Interest, error) {
	var interests []*domain.Interest
	query := `SELECT * FROM interests WHERE parent_id = $1 ORDER BY name`
	err := r.db.SelectContext(ctx, &interests, query, parentID)
	return interests, err
}

func (r *interestRepository) Delete(ctx context.Context, id int) error {
	// Children go with the parent via ON DELETE CASCADE.
	query := `DELETE FROM interests WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrInterestNotFound
	}
	return nil
}
