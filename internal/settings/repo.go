package settings

import (
	"context"
	"time"

	"github.com/dkoladic/portfolio-backend/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// allowed setting keys, everything else is dropped on write
var knownKeys = map[string]bool{
	"fullName":    true,
	"headline":    true,
	"bio":         true,
	"email":       true,
	"phone":       true,
	"location":    true,
	"resumeUrl":   true,
	"linkedinUrl": true,
	"githubUrl":   true,
}

func KnownKey(key string) bool {
	return knownKeys[key]
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) GetAll(ctx context.Context) (map[string]string, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "settingsRepo.getAll")
	defer span.End()

	rows, err := r.db.Query(
		ctx,
		`SELECT key, value FROM settings;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}

	return settings, nil
}

// Upsert writes the given key-value pairs, unknown keys are silently
// skipped. Partial updates are the norm, absent keys stay untouched.
func (r *Repo) Upsert(ctx context.Context, values map[string]string) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "settingsRepo.upsert")
	defer span.End()

	for key, value := range values {
		if !KnownKey(key) {
			continue
		}
		if _, err := r.db.Exec(
			ctx,
			`INSERT INTO settings (key, value, updated_at) VALUES ($1, $2, $3)
				ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = $3;`,
			key, value, time.Now(),
		); err != nil {
			return err
		}
	}

	return nil
}
