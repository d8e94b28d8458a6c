package notification

import (
	"context"

	"github.com/turtacn/molsketch/internal/domain/sketch"
	"github.com/turtacn/molsketch/internal/infrastructure/monitoring/logging"
)

// LogNotifier writes every change event to the structured log.
type LogNotifier struct {
	logger logging.Logger
}

func NewLogNotifier(logger logging.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("changes")}
}

func (n *LogNotifier) Name() string { return "log" }

func (n *LogNotifier) Notify(ctx context.Context, event sketch.ChangeEvent) error {
	n.logger.WithContext(ctx).Info("Structure changed",
		logging.String("session_id", event.SessionID),
		logging.Int64("revision", int64(event.Revision)),
		logging.String("effect", event.Effect),
		logging.Int("atoms", len(event.Document.Nodes)),
		logging.Int("bonds", len(event.Document.Links)),
		logging.String("smiles", event.Notation),
	)
	return nil
}

func (n *LogNotifier) Close() error { return nil }

//Personal.AI order the ending
