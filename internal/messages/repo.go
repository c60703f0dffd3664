package messages

import (
	"context"
	"errors"
	"time"

	"github.com/dkoladic/portfolio-backend/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrMessageNotFound = errors.New("message not found")

const (
	StatusUnread = "unread"
	StatusRead   = "read"
)

// Message is one entry in the contact inbox. IDs are random UUIDs so they
// cannot be enumerated from the public submit endpoint.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, message *Message) (*Message, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "messagesRepo.add")
	defer span.End()

	message.ID = uuid.NewString()
	message.Status = StatusUnread
	message.CreatedAt = time.Now()

	_, err := r.db.Exec(
		ctx,
		`INSERT INTO messages
				(id, name, email, subject, body, status, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7);`,
		message.ID, message.Name, message.Email, message.Subject,
		message.Body, message.Status, message.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("message.id", message.ID))

	return message, nil
}

func (r *Repo) MarkRead(ctx context.Context, id string) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "messagesRepo.markRead")
	defer span.End()

	tag, err := r.db.Exec(
		ctx,
		`UPDATE messages SET status = $1 WHERE id = $2;`,
		StatusRead, id,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrMessageNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "messagesRepo.delete")
	defer span.End()

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM messages WHERE id = $1;`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *Repo) List(ctx context.Context) ([]Message, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "messagesRepo.list")
	defer span.End()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, name, email, subject, body, status, created_at
			FROM messages
			ORDER BY created_at DESC;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.Status, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, nil
}
