package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"communicare-backend/internal/domain"
	"communicare-backend/internal/repository"
)

type helpRequestRepository struct {
	db DBTX
}

func NewHelpRequestRepository(db DBTX) repository.HelpRequestRepository {
	return &helpRequestRepository{db: db}
}

func (r *helpRequestRepository) Create(ctx context.Context, req *domain.HelpRequest) error {
	query := `INSERT INTO help_requests (requester_id, description, hours, headcount, reward, schedule, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query,
		req.RequesterID, req.Description, req.Hours, req.Headcount, req.Reward, req.Schedule, req.Status,
	).Scan(&req.ID, &req.CreatedOn)
}

func (r *helpRequestRepository) GetByID(ctx context.Context, id int32) (*domain.HelpRequest, error) {
	req := &domain.HelpRequest{}
	query := `SELECT id, requester_id, description, hours, headcount, reward, schedule, status, completed_on, created_on
	          FROM help_requests WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.RequesterID, &req.Description, &req.Hours, &req.Headcount,
		&req.Reward, &req.Schedule, &req.Status, &req.CompletedOn, &req.CreatedOn,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("help request %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return req, nil
}

func (r *helpRequestRepository) Update(ctx context.Context, req *domain.HelpRequest) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE help_requests SET status = $2, completed_on = $3 WHERE id = $1`,
		req.ID, req.Status, req.CompletedOn,
	)
	return err
}

func (r *helpRequestRepository) ListByStatus(ctx context.Context, status domain.HelpRequestStatus) ([]domain.HelpRequest, error) {
	query := `SELECT id, requester_id, description, hours, headcount, reward, schedule, status, completed_on, created_on
	          FROM help_requests WHERE status = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.HelpRequest
	for rows.Next() {
		var req domain.HelpRequest
		err := rows.Scan(&req.ID, &req.RequesterID, &req.Description, &req.Hours, &req.Headcount,
			&req.Reward, &req.Schedule, &req.Status, &req.CompletedOn, &req.CreatedOn)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func (r *helpRequestRepository) CreateVolunteering(ctx context.Context, v *domain.Volunteering) error {
	query := `INSERT INTO volunteerings (request_id, user_id, status) VALUES ($1, $2, $3) RETURNING created_on`
	return r.db.QueryRowContext(ctx, query, v.RequestID, v.UserID, v.Status).Scan(&v.CreatedOn)
}

func (r *helpRequestRepository) GetVolunteering(ctx context.Context, requestID, userID int32) (*domain.Volunteering, error) {
	v := &domain.Volunteering{}
	query := `SELECT request_id, user_id, status, created_on FROM volunteerings WHERE request_id = $1 AND user_id = $2`
	err := r.db.QueryRowContext(ctx, query, requestID, userID).Scan(&v.RequestID, &v.UserID, &v.Status, &v.CreatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("volunteering %d/%d: %w", requestID, userID, domain.ErrNotFound)
		}
		return nil, err
	}
	return v, nil
}

func (r *helpRequestRepository) UpdateVolunteering(ctx context.Context, v *domain.Volunteering) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE volunteerings SET status = $3 WHERE request_id = $1 AND user_id = $2`,
		v.RequestID, v.UserID, v.Status,
	)
	return err
}

func (r *helpRequestRepository) DeleteVolunteering(ctx context.Context, requestID, userID int32) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM volunteerings WHERE request_id = $1 AND user_id = $2`,
		requestID, userID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("volunteering %d/%d: %w", requestID, userID, domain.ErrNotFound)
	}
	return nil
}

func (r *helpRequestRepository) CountVolunteers(ctx context.Context, requestID int32, status domain.VolunteeringStatus) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM volunteerings WHERE request_id = $1 AND status = $2`,
		requestID, status,
	).Scan(&count)
	return count, err
}
