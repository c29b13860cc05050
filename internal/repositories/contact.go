package repositories

import (
	"context"
	"log/slog"
	"time"

	"github.com/myrjola/finbias/internal/errors"
	"github.com/myrjola/finbias/internal/models"
	"github.com/myrjola/finbias/internal/sqlite"
)

type ContactRepository struct {
	pools
	logger *slog.Logger
}

func NewContactRepository(db *sqlite.Database, logger *slog.Logger) *ContactRepository {
	return &ContactRepository{
		pools:  newPools(db),
		logger: logger.With("source", "ContactRepository"),
	}
}

type contactRow struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	Email     string `db:"email"`
	Message   string `db:"message"`
	CreatedAt string `db:"created_at"`
}

// Add stores a contact message and returns its id.
func (r *ContactRepository) Add(ctx context.Context, msg models.ContactMessage) (int64, error) {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	row := contactRow{
		ID:        0,
		Name:      msg.Name,
		Email:     msg.Email,
		Message:   msg.Message,
		CreatedAt: formatTime(msg.CreatedAt),
	}
	result, err := r.readWrite.NamedExecContext(ctx, `INSERT INTO contact_messages (name, email, message, created_at)
VALUES (:name, :email, :message, :created_at)`, row)
	if err != nil {
		return 0, errors.Wrap(err, "insert contact message")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "last insert id")
	}
	return id, nil
}

// Recent returns up to limit contact messages, newest first.
func (r *ContactRepository) Recent(ctx context.Context, limit int) ([]models.ContactMessage, error) {
	var rows []contactRow
	if err := r.readOnly.SelectContext(ctx, &rows, `SELECT id, name, email, message, created_at
FROM contact_messages ORDER BY id DESC LIMIT ?`, limit); err != nil {
		return nil, errors.Wrap(err, "select contact messages")
	}
	messages := make([]models.ContactMessage, 0, len(rows))
	for _, row := range rows {
		createdAt, err := parseTime(row.CreatedAt)
		if err != nil {
			return nil, errors.Wrap(err, "created at", slog.Int64("contact_message_id", row.ID))
		}
		messages = append(messages, models.ContactMessage{
			ID:        row.ID,
			Name:      row.Name,
			Email:     row.Email,
			Message:   row.Message,
			CreatedAt: createdAt,
		})
	}
	return messages, nil
}
