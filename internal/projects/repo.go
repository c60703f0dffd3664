package projects

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dkoladic/portfolio-backend/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrProjectNotFound = errors.New("project not found")

type Project struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Technologies []string  `json:"technologies"`
	GithubURL    string    `json:"githubUrl"`
	DemoURL      string    `json:"demoUrl"`
	Status       string    `json:"status"`
	Priority     int       `json:"priority"`
	Images       []string  `json:"images"`
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

func (r *Repo) Add(ctx context.Context, project *Project) (*Project, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "projectsRepo.add")
	defer span.End()

	technologiesJson, err := json.Marshal(project.Technologies)
	if err != nil {
		return nil, fmt.Errorf("marshal technologies: %w", err)
	}
	imagesJson, err := json.Marshal(project.Images)
	if err != nil {
		return nil, fmt.Errorf("marshal images: %w", err)
	}

	now := time.Now()
	rows, err := r.db.Query(
		ctx,
		`INSERT INTO projects
				(title, description, technologies, github_url, demo_url, status, priority, images, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id;`,
		project.Title, project.Description, technologiesJson, project.GithubURL,
		project.DemoURL, project.Status, project.Priority, imagesJson, now, now,
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

	span.SetAttributes(attribute.Int("project.id", id))

	project.ID = id
	project.CreatedAt = now
	project.UpdatedAt = now
	return project, nil
}

func (r *Repo) Update(ctx context.Context, project *Project) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "projectsRepo.update")
	defer span.End()

	technologiesJson, err := json.Marshal(project.Technologies)
	if err != nil {
		return fmt.Errorf("marshal technologies: %w", err)
	}
	imagesJson, err := json.Marshal(project.Images)
	if err != nil {
		return fmt.Errorf("marshal images: %w", err)
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE projects SET
				title = $1, description = $2, technologies = $3, github_url = $4,
				demo_url = $5, status = $6, priority = $7, images = $8, updated_at = $9
			WHERE id = $10;`,
		project.Title, project.Description, technologiesJson, project.GithubURL,
		project.DemoURL, project.Status, project.Priority, imagesJson, time.Now(), project.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrProjectNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "projectsRepo.delete")
	defer span.End()

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM projects WHERE id = $1;`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// List returns all projects, most important first: lower priority value
// wins, ties broken by newest.
func (r *Repo) List(ctx context.Context) ([]Project, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "projectsRepo.list")
	defer span.End()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, title, description, technologies, github_url,
				demo_url, status, priority, images, created_at, updated_at
			FROM projects
			ORDER BY priority ASC, created_at DESC;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	var projects []Project
	for rows.Next() {
		var p Project
		var technologiesJson, imagesJson []byte
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &technologiesJson, &p.GithubURL,
			&p.DemoURL, &p.Status, &p.Priority, &imagesJson, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if len(technologiesJson) > 0 {
			if err := json.Unmarshal(technologiesJson, &p.Technologies); err != nil {
				return nil, fmt.Errorf("unmarshal technologies: %w", err)
			}
		}
		if len(imagesJson) > 0 {
			if err := json.Unmarshal(imagesJson, &p.Images); err != nil {
				return nil, fmt.Errorf("unmarshal images: %w", err)
			}
		}
		projects = append(projects, p)
	}

	return projects, nil
}
