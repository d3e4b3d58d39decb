package services

import (
	"context"
	"errors"

	"charitybridge/internal/logger"
	"charitybridge/internal/metrics"
	"charitybridge/pkg/apperrors"

	"gorm.io/gorm"
)

// detach keeps request-scoped values (request id, trace) for work that must
// outlive the request.
func detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

// outcomeLabel maps an error to the metrics outcome label.
func outcomeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	switch apperrors.CodeOf(err) {
	case apperrors.CodeForbidden:
		return "forbidden"
	case apperrors.CodeInvalidState:
		return "invalid_state"
	case apperrors.CodeConflict:
		return "conflict"
	case apperrors.CodeNotFound:
		return "not_found"
	case apperrors.CodeValidationFailed:
		return "validation_failed"
	default:
		return "error"
	}
}

func recordTransition(m *metrics.Metrics, event string, err error) {
	m.IncClaimTransition(event, outcomeLabel(err))
}

// logNotifyFailure is the single sink for post-commit notification errors.
func logNotifyFailure(ctx context.Context, op string, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, ErrRecipientUnresolved) {
		logger.CtxWarn(ctx, "notification skipped", "op", op, "reason", err.Error())
		return
	}
	logger.CtxWithError(ctx, "notification failed", err, "op", op)
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
