package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"workzen/internal/events"
	"workzen/internal/payrun"
	payrunerrors "workzen/internal/payrun/errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumePayrunProcessRequested runs the payslip assembly batch for a payrun
// that the API flipped to PROCESSING. Run is idempotent per payrun: a
// redelivered event for an already finished run is rejected by the status
// check and committed as handled.
func ConsumePayrunProcessRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	payrunService payrun.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payrun_process")
	log.Info("payrun process consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payrun process consumer stopped")
				return
			}
			log.Error("fetch payrun process message failed", zap.Error(err))
			continue
		}

		var event events.PayrunProcessRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payrun process event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		result, err := payrunService.Run(ctx, event.CompanyID, event.PayrunID)
		if err != nil {
			log.Error("run payrun failed",
				zap.String("payrun_id", event.PayrunID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			// A redelivery for a run that is gone or no longer
			// PROCESSING will never succeed; drop it.
			if errors.Is(err, payrunerrors.ErrPayrunNotFound) ||
				errors.Is(err, payrunerrors.ErrInvalidStatusTransition) {
				_ = reader.CommitMessages(ctx, msg)
			}
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payrun process message failed", zap.Error(err))
			continue
		}

		log.Info("payrun processed",
			zap.String("payrun_id", event.PayrunID),
			zap.String("company_id", event.CompanyID),
			zap.String("status", result.Status),
			zap.Int("processed", result.ProcessedCount),
			zap.Int("failed", result.FailedCount),
		)
	}
}
