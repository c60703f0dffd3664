package skills

import (
	"context"
	"errors"
	"time"

	"github.com/dkoladic/portfolio-backend/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrSkillNotFound = errors.New("skill not found")

// Skill is a single item on the skills grid, e.g. "Go / backend / expert".
// Level is free-form text, the frontend decides how to render it.
type Skill struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Level        string    `json:"level"`
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

func (r *Repo) Add(ctx context.Context, skill *Skill) (*Skill, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "skillsRepo.add")
	defer span.End()

	now := time.Now()
	rows, err := r.db.Query(
		ctx,
		`INSERT INTO skills
				(name, category, level, display_order, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id;`,
		skill.Name, skill.Category, skill.Level, skill.DisplayOrder, now, now,
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
	span.SetAttributes(attribute.Int("skill.id", id))

	skill.ID = id
	skill.CreatedAt = now
	skill.UpdatedAt = now
	return skill, nil
}

func (r *Repo) Update(ctx context.Context, skill *Skill) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "skillsRepo.update")
	defer span.End()

	tag, err := r.db.Exec(
		ctx,
		`UPDATE skills SET
				name = $1, category = $2, level = $3, display_order = $4, updated_at = $5
			WHERE id = $6;`,
		skill.Name, skill.Category, skill.Level, skill.DisplayOrder, time.Now(), skill.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrSkillNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "skillsRepo.delete")
	defer span.End()

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM skills WHERE id = $1;`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSkillNotFound
	}
	return nil
}

// List returns all skills in their display order.
func (r *Repo) List(ctx context.Context) ([]Skill, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "skillsRepo.list")
	defer span.End()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, name, category, level, display_order, created_at, updated_at
			FROM skills
			ORDER BY display_order ASC, name ASC;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	var allSkills []Skill
	for rows.Next() {
		var s Skill
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Category, &s.Level, &s.DisplayOrder, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		allSkills = append(allSkills, s)
	}

	return allSkills, nil
}
