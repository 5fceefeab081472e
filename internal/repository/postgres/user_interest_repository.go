package postgres

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/repository"
)

type userInterestRepository struct {
	db *sqlx.DB
}

func NewUserInterestRepository(db *sqlx.DB) repository.UserInterestRepository {
	return &userInterestRepository{db: db}
}

func (r *userInterestRepository) Add(ctx context.Context, userID, interestID int) error {
	query := `INSERT INTO user_interests (user_id, interest_id) VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, query, userID, interestID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				return domain.ErrInterestAlreadyDeclared
			case "23503":
				return domain.ErrInterestNotFound
			}
		}
		return err
	}
	return nil
}

func (r *userInterestRepository) Remove(ctx context.Context, userID, interestID int) error {
	query := `DELETE FROM user_interests WHERE user_id = $1 AND interest_id = $2`
	result, err := r.db.ExecContext(ctx, query, userID, interestID)
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

func (r *userInterestRepository) ListForUser(ctx context.Context, userID int) ([]*domain.Interest, error) {
	var interests []*domain.Interest
	query := `
		SELECT i.* FROM interests i
		JOIN user_interests ui ON ui.interest_id = i.id
		WHERE ui.user_id = $1
		ORDER BY i.category, i.name
	`
	err := r.db.SelectContext(ctx, &interests, query, userID)
	return interests, err
}

// SharedCounts materializes the shared-interest count per candidate as one
// grouped join over the requester's declared set.
func (r *userInterestRepository) SharedCounts(ctx context.Context, userID int) (map[int]int, error) {
	query := `
		SELECT theirs.user_id, COUNT(*) AS shared
		FROM user_interests theirs
		JOIN user_interests mine
		  ON mine.interest_id = theirs.interest_id AND mine.user_id = $1
		WHERE theirs.user_id != $1
		GROUP BY theirs.user_id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var candidateID, shared int
		if err := rows.Scan(&candidateID, &shared); err != nil {
			continue
		}
		counts[candidateID] = shared
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}
