package hobbies

import (
	"context"
	"errors"
	"time"

	"github.com/dkoladic/portfolio-backend/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrHobbyNotFound = errors.New("hobby not found")

type Hobby struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, hobby *Hobby) (*Hobby, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "hobbiesRepo.add")
	defer span.End()

	now := time.Now()
	rows, err := r.db.Query(
		ctx,
		`INSERT INTO hobbies
				(name, description, display_order, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5)
			RETURNING id;`,
		hobby.Name, hobby.Description, hobby.DisplayOrder, now, now,
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
		return nil, err
	}

	hobby.ID = id
	hobby.CreatedAt = now
	hobby.UpdatedAt = now
	return hobby, nil
}

func (r *Repo) Update(ctx context.Context, hobby *Hobby) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "hobbiesRepo.update")
	defer span.End()

	tag, err := r.db.Exec(
		ctx,
		`UPDATE hobbies SET
				name = $1, description = $2, display_order = $3, updated_at = $4
			WHERE id = $5;`,
		hobby.Name, hobby.Description, hobby.DisplayOrder, time.Now(), hobby.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrHobbyNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "hobbiesRepo.delete")
	defer span.End()

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM hobbies WHERE id = $1;`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrHobbyNotFound
	}
	return nil
}

func (r *Repo) List(ctx context.Context) ([]Hobby, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "hobbiesRepo.list")
	defer span.End()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, name, description, display_order, created_at, updated_at
			FROM hobbies
			ORDER BY display_order ASC, name ASC;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	var allHobbies []Hobby
	for rows.Next() {
		var h Hobby
		if err := rows.Scan(
			&h.ID, &h.Name, &h.Description, &h.DisplayOrder, &h.CreatedAt, &h.UpdatedAt,
		); err != nil {
			return nil, err
		}
		allHobbies = append(allHobbies, h)
	}

	return allHobbies, nil
}
