package services

import (
	"context"

	"github.com/samber/mo"

	"jarvis/models"
)

// IntentsService turns free-form command text into a typed intent.
type IntentsService interface {
	// Resolve never fails: when the AI classifier is unavailable or returns
	// garbage, the rule-based classifier supplies the intent.
	Resolve(ctx context.Context, text string) *models.Intent
}

// CommandsService runs the full pipeline: classify, dispatch to exactly one
// capability, wrap the outcome in a response envelope.
type CommandsService interface {
	ProcessCommand(ctx context.Context, command models.RawCommand) (*models.ResponseEnvelope, error)
}

// CommandHistoryService records processed commands for later inspection.
type CommandHistoryService interface {
	RecordCommand(ctx context.Context, record *models.CommandRecord) error
	ListRecentCommands(ctx context.Context, limit int) ([]models.CommandRecord, error)
	GetCommandByID(ctx context.Context, id string) (mo.Option[models.CommandRecord], error)
}
