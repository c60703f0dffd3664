package testimonials

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkoladic/portfolio-backend/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrTestimonialNotFound = errors.New("testimonial not found")
	ErrInvalidStatus       = errors.New("invalid testimonial status")
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Testimonial struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Company    string     `json:"company"`
	Position   string     `json:"position"`
	Content    string     `json:"content"`
	Rating     int        `json:"rating"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	ApprovedAt *time.Time `json:"approvedAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Add stores a new testimonial, always as pending. Approval is a separate,
// admin-only step.
func (r *Repo) Add(ctx context.Context, t *Testimonial) (*Testimonial, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "testimonialsRepo.add")
	defer span.End()

	now := time.Now()
	rows, err := r.db.Query(
		ctx,
		`INSERT INTO testimonials
				(name, company, position, content, rating, status, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id;`,
		t.Name, t.Company, t.Position, t.Content, t.Rating, StatusPending, now, now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	t.ID = id
	t.Status = StatusPending
	t.CreatedAt = now
	t.UpdatedAt = now
	return t, nil
}

// SetStatus moves a testimonial through the review workflow; approving
// also stamps the approval time.
func (r *Repo) SetStatus(ctx context.Context, id int, status string) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "testimonialsRepo.setStatus")
	defer span.End()

	if !ValidStatus(status) {
		return ErrInvalidStatus
	}

	var approvedAt *time.Time
	if status == StatusApproved {
		now := time.Now()
		approvedAt = &now
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE testimonials SET status = $1, approved_at = $2, updated_at = $3 WHERE id = $4;`,
		status, approvedAt, time.Now(), id,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrTestimonialNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "testimonialsRepo.delete")
	defer span.End()

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM testimonials WHERE id = $1;`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTestimonialNotFound
	}
	return nil
}

// List returns testimonials, newest first. With approvedOnly set, only the
// ones cleared for public display come back.
func (r *Repo) List(ctx context.Context, approvedOnly bool) ([]Testimonial, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "testimonialsRepo.list")
	defer span.End()

	query := `
		SELECT
			id, name, company, position, content, rating,
			status, created_at, approved_at, updated_at
		FROM testimonials`
	if approvedOnly {
		query += ` WHERE status = 'approved'`
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	var testimonials []Testimonial
	for rows.Next() {
		var t Testimonial
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Company, &t.Position, &t.Content, &t.Rating,
			&t.Status, &t.CreatedAt, &t.ApprovedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		testimonials = append(testimonials, t)
	}

	return testimonials, nil
}
