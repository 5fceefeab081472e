package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/repository"
)

type connectionRepository struct {
	db *sqlx.DB
}

func NewConnectionRepository(db *sqlx.DB) repository.ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) Create(ctx context.Context, conn *domain.Connection) error {
	query := `
		INSERT INTO connections (requester_id, receiver_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, conn.RequesterID, conn.ReceiverID, conn.Status).
		Scan(&conn.ID, &conn.CreatedAt, &conn.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrConnectionExists
		}
		return err
	}
	return nil
}

func (r *connectionRepository) GetByID(ctx context.Context, id int) (*domain.Connection, error) {
	var conn domain.Connection
	query := `SELECT * FROM connections WHERE id = $1`
	err := r.db.GetContext(ctx, &conn, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrConnectionNotFound
		}
		return nil, err
	}
	return &conn, nil
}

func (r *connectionRepository) GetByUsers(ctx context.Context, requesterID, receiverID int) (*domain.Connection, error) {
	var conn domain.Connection
	query := `SELECT * FROM connections WHERE requester_id = $1 AND receiver_id = $2`
	err := r.db.GetContext(ctx, &conn, query, requesterID, receiverID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrConnectionNotFound
		}
		return nil, err
	}
	return &conn, nil
}

func (r *connectionRepository) GetBetween(ctx context.Context, user1ID, user2ID int) (*domain.Connection, error) {
	var conn domain.Connection
	query := `
		SELECT * FROM connections
		WHERE (requester_id = $1 AND receiver_id = $2)
		   OR (requester_id = $2 AND receiver_id = $1)
		ORDER BY created_at DESC
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &conn, query, user1ID, user2ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrConnectionNotFound
		}
		return nil, err
	}
	return &conn, nil
}

func (r *connectionRepository) UpdateStatus(ctx context.Context, id int, status domain.ConnectionStatus) error {
	query := `UPDATE connections SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrConnectionNotFound
	}
	return nil
}

func (r *connectionRepository) ListIncoming(ctx context.Context, receiverID int, status domain.ConnectionStatus) ([]*domain.Connection, error) {
	var conns []*domain.Connection
	query := `
		SELECT * FROM connections
		WHERE receiver_id = $1 AND status = $2
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &conns, query, receiverID, status)
	return conns, err
}

func (r *connectionRepository) ListOutgoing(ctx context.Context, requesterID int, status domain.ConnectionStatus) ([]*domain.Connection, error) {
	var conns []*domain.Connection
	query := `
		SELECT * FROM connections
		WHERE requester_id = $1 AND status = $2
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &conns, query, requesterID, status)
	return conns, err
}

func (r *connectionRepository) ListAcceptedForUser(ctx context.Context, userID int) ([]*domain.Connection, error) {
	var conns []*domain.Connection
	query := `
		SELECT * FROM connections
		WHERE (requester_id = $1 OR receiver_id = $1) AND status = 'accepted'
		ORDER BY updated_at DESC
	`
	err := r.db.SelectContext(ctx, &conns, query, userID)
	return conns, err
}
