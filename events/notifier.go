package events

import (
	"context"

	"go.uber.org/zap"

	"pookadai/models"
)

// LogNotifier writes order events to the log when no broker is configured
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, event models.OrderEvent) error {
	n.logger.Info("order event",
		zap.String("event_type", string(event.Type)),
		zap.String("order_id", event.OrderID),
		zap.String("status", string(event.Status)),
		zap.String("prev_status", string(event.PrevStatus)),
		zap.Int64("total", event.Total))
	return nil
}

func (n *LogNotifier) Close() error { return nil }
