package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	"jarvis/models"
)

// PostgresCommandHistoryRepository persists processed command records.
type PostgresCommandHistoryRepository struct {
	db     *sqlx.DB
	schema string
}

func NewPostgresCommandHistoryRepository(db *sqlx.DB, schema string) *PostgresCommandHistoryRepository {
	return &PostgresCommandHistoryRepository{db: db, schema: schema}
}

func (r *PostgresCommandHistoryRepository) CreateCommandRecord(ctx context.Context, record *models.CommandRecord) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.command_history
			(id, text_content, channel, intent_kind, intent_action, success, error_message, created_at)
		VALUES
			(:id, :text_content, :channel, :intent_kind, :intent_action, :success, :error_message, :created_at)`, r.schema)

	_, err := r.db.NamedExecContext(ctx, query, record)
	if err != nil {
		return fmt.Errorf("failed to insert command record: %w", err)
	}
	return nil
}

func (r *PostgresCommandHistoryRepository) ListRecentCommandRecords(ctx context.Context, limit int) ([]models.CommandRecord, error) {
	query := fmt.Sprintf(`
		SELECT id, text_content, channel, intent_kind, intent_action, success, error_message, created_at
		FROM %s.command_history
		ORDER BY created_at DESC
		LIMIT $1`, r.schema)

	records := []models.CommandRecord{}
	if err := r.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list command records: %w", err)
	}
	return records, nil
}

func (r *PostgresCommandHistoryRepository) GetCommandRecordByID(ctx context.Context, id string) (mo.Option[models.CommandRecord], error) {
	query := fmt.Sprintf(`
		SELECT id, text_content, channel, intent_kind, intent_action, success, error_message, created_at
		FROM %s.command_history
		WHERE id = $1`, r.schema)

	var record models.CommandRecord
	err := r.db.GetContext(ctx, &record, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return mo.None[models.CommandRecord](), nil
	}
	if err != nil {
		return mo.None[models.CommandRecord](), fmt.Errorf("failed to get command record: %w", err)
	}
	return mo.Some(record), nil
}
