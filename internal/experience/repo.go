package experience

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dkoladic/portfolio-backend/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrEntryNotFound = errors.New("experience entry not found")

const dateLayout = "2006-01-02"

// Entry is a single position at a company. Dates travel as plain
// "YYYY-MM-DD" strings over the API, an ongoing position has no end date.
type Entry struct {
	ID           int       `json:"id"`
	Company      string    `json:"company"`
	Position     string    `json:"position"`
	StartDate    string    `json:"startDate"`
	EndDate      *string   `json:"endDate"`
	Description  string    `json:"description"`
	Technologies []string  `json:"technologies"`
	Achievements []string  `json:"achievements"`
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
	ctx, span := tracing.GlobalTracer.Start(ctx, "experienceRepo.add")
	defer span.End()

	if err := entry.validDates(); err != nil {
		return nil, err
	}

	technologiesJson, err := json.Marshal(entry.Technologies)
	if err != nil {
		return nil, fmt.Errorf("marshal technologies: %w", err)
	}
	achievementsJson, err := json.Marshal(entry.Achievements)
	if err != nil {
		return nil, fmt.Errorf("marshal achievements: %w", err)
	}

	now := time.Now()
	rows, err := r.db.Query(
		ctx,
		`INSERT INTO experience
				(company, position, start_date, end_date, description, technologies, achievements, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id;`,
		entry.Company, entry.Position, entry.StartDate, entry.EndDate,
		entry.Description, technologiesJson, achievementsJson, now, now,
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
	ctx, span := tracing.GlobalTracer.Start(ctx, "experienceRepo.update")
	defer span.End()

	if err := entry.validDates(); err != nil {
		return err
	}

	technologiesJson, err := json.Marshal(entry.Technologies)
	if err != nil {
		return fmt.Errorf("marshal technologies: %w", err)
	}
	achievementsJson, err := json.Marshal(entry.Achievements)
	if err != nil {
		return fmt.Errorf("marshal achievements: %w", err)
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE experience SET
				company = $1, position = $2, start_date = $3, end_date = $4,
				description = $5, technologies = $6, achievements = $7, updated_at = $8
			WHERE id = $9;`,
		entry.Company, entry.Position, entry.StartDate, entry.EndDate,
		entry.Description, technologiesJson, achievementsJson, time.Now(), entry.ID,
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
	ctx, span := tracing.GlobalTracer.Start(ctx, "experienceRepo.delete")
	defer span.End()

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM experience WHERE id = $1;`,
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

// List returns all entries, most recent position first.
func (r *Repo) List(ctx context.Context) ([]Entry, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "experienceRepo.list")
	defer span.End()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, company, position, start_date, end_date,
				description, technologies, achievements, created_at, updated_at
			FROM experience
			ORDER BY start_date DESC;`,
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
		var technologiesJson, achievementsJson []byte
		if err := rows.Scan(
			&e.ID, &e.Company, &e.Position, &startDate, &endDate,
			&e.Description, &technologiesJson, &achievementsJson, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}

		e.StartDate = startDate.Format(dateLayout)
		if endDate != nil {
			formatted := endDate.Format(dateLayout)
			e.EndDate = &formatted
		}

		if len(technologiesJson) > 0 {
			if err := json.Unmarshal(technologiesJson, &e.Technologies); err != nil {
				return nil, fmt.Errorf("unmarshal technologies: %w", err)
			}
		}
		if len(achievementsJson) > 0 {
			if err := json.Unmarshal(achievementsJson, &e.Achievements); err != nil {
				return nil, fmt.Errorf("unmarshal achievements: %w", err)
			}
		}

		entries = append(entries, e)
	}

	return entries, nil
}
