package education

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkoladic/portfolio-backend/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrEntryNotFound = errors.New("education entry not found")

const dateLayout = "2006-01-02"

// Entry is one school or program. Dates travel as plain "YYYY-MM-DD"
// strings over the API, an ongoing program has no end date.
type Entry struct {
	ID           int       `json:"id"`
	School       string    `json:"school"`
	Location     string    `json:"location"`
	Degree       string    `json:"degree"`
	StartDate    string    `json:"startDate"`
	EndDate      *string   `json:"endDate"`
	Description  string    `json:"description"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (e *Entry) validDates() error {
	if _, err := time.Parse(dateLayout, e.StartDate); err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}
	if e.EndDate != nil {
		if _, err := time.Parse(dateLayout, *e.EndDate); err != nil {
			return fmt.Errorf("invalid end date: %w", err)
		}
	}
	return nil
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, entry *Entry) (*Entry, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "educationRepo.add")
	defer span.End()

	if err := entry.validDates(); err != nil {
		return nil, err
	}

	now := time.Now()
	rows, err := r.db.Query(
		ctx,
		`INSERT INTO education
				(school, location, degree, start_date, end_date, description, display_order, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id;`,
		entry.School, entry.Location, entry.Degree, entry.StartDate, entry.EndDate,
		entry.Description, entry.DisplayOrder, now, now,
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

	entry.ID = id
	entry.CreatedAt = now
	entry.UpdatedAt = now
	return entry, nil
}

func (r *Repo) Update(ctx context.Context, entry *Entry) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "educationRepo.update")
	defer span.End()

	if err := entry.validDates(); err != nil {
		return err
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE education SET
				school = $1, location = $2, degree = $3, start_date = $4,
				end_date = $5, description = $6, display_order = $7, updated_at = $8
			WHERE id = $9;`,
		entry.School, entry.Location, entry.Degree, entry.StartDate, entry.EndDate,
		entry.Description, entry.DisplayOrder, time.Now(), entry.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "educationRepo.delete")
	defer span.End()

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM education WHERE id = $1;`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// List returns all entries, display order first, then most recent.
func (r *Repo) List(ctx context.Context) ([]Entry, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "educationRepo.list")
	defer span.End()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, school, location, degree, start_date, end_date,
				description, display_order, created_at, updated_at
			FROM education
			ORDER BY display_order ASC, start_date DESC;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	var entries []Entry
	for rows.Next() {
		var e Entry
		var startDate time.Time
		var endDate *time.Time
		if err := rows.Scan(
			&e.ID, &e.School, &e.Location, &e.Degree, &startDate, &endDate,
			&e.Description, &e.DisplayOrder, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}

		e.StartDate = startDate.Format(dateLayout)
		if endDate != nil {
			formatted := endDate.Format(dateLayout)
			e.EndDate = &formatted
		}

		entries = append(entries, e)
	}

	return entries, nil
}
