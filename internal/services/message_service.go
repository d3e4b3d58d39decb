package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"charitybridge/internal/logger"
	"charitybridge/internal/metrics"
	"charitybridge/internal/models"
	"charitybridge/internal/policy"
	"charitybridge/internal/repositories"
	"charitybridge/internal/services/dto"
	"charitybridge/pkg/apperrors"

	"gorm.io/gorm"
)

const MaxMessageLength = 1000

//go:generate mockgen -source=message_service.go -destination=mocks/message_service_mock.go -package=mocks

// MessageService is the per-claim thread between the charity and the donor.
type MessageService interface {
	ListMessages(ctx context.Context, db *gorm.DB, actor policy.Actor, claimID string) (*dto.ThreadResponse, error)
	PostMessage(ctx context.Context, db *gorm.DB, actor policy.Actor, claimID string, req *dto.PostMessageRequest) (*dto.MessageResponse, error)
	MarkThreadRead(ctx context.Context, db *gorm.DB, actor policy.Actor, claimID string) (int64, error)
	MarkMessageRead(ctx context.Context, db *gorm.DB, actor policy.Actor, messageID string) (*dto.MessageResponse, error)
}

type messageService struct {
	messageRepo repositories.MessageRepository
	claimRepo   repositories.ClaimRepository
	notifier    Notifier
	metrics     *metrics.Metrics
	now         func() time.Time
}

func NewMessageService(
	messageRepo repositories.MessageRepository,
	claimRepo repositories.ClaimRepository,
	notifier Notifier,
	m *metrics.Metrics,
) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		claimRepo:   claimRepo,
		notifier:    notifier,
		metrics:     m,
		now:         time.Now,
	}
}

// ListMessages does not change read state.
func (s *messageService) ListMessages(ctx context.Context, db *gorm.DB, actor policy.Actor, claimID string) (*dto.ThreadResponse, error) {
	claim, err := s.claimRepo.FindByID(db.WithContext(ctx), claimID)
	if err != nil {
		return nil, handleClaimError(err)
	}
	if !policy.CanView(actor, claim) {
		return nil, apperrors.ErrThreadAccessDenied
	}

	messages, err := s.messageRepo.ListThread(db.WithContext(ctx), claimID)
	if err != nil {
		return nil, handleMessageError(err)
	}
	unread, err := s.messageRepo.CountUnread(db.WithContext(ctx), claimID, actor.ID)
	if err != nil {
		return nil, handleMessageError(err)
	}

	items := make([]*dto.MessageResponse, 0, len(messages))
	for i := range messages {
		items = append(items, dto.NewMessageResponse(&messages[i]))
	}

	return &dto.ThreadResponse{
		ClaimID:     claim.ID,
		ClaimTitle:  claimTitle(claim),
		Messages:    items,
		UnreadCount: unread,
	}, nil
}

// PostMessage appends to the thread and, in the same transaction, marks what
// the other party wrote as read: replying implies having read it.
func (s *messageService) PostMessage(ctx context.Context, db *gorm.DB, actor policy.Actor, claimID string, req *dto.PostMessageRequest) (*dto.MessageResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.FieldError("content", "This field is required")
	}
	if utf8.RuneCountInString(content) > MaxMessageLength {
		return nil, apperrors.FieldError("content", "Must be at most 1000 characters long")
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	claim, err := s.claimRepo.FindByID(tx, claimID)
	if err != nil {
		return nil, handleClaimError(err)
	}
	if !policy.CanMessage(actor, claim) {
		return nil, apperrors.ErrThreadAccessDenied
	}

	message := &models.Message{
		ClaimID:  claimID,
		SenderID: actor.ID,
		Content:  content,
	}
	if err := s.messageRepo.Create(tx, message); err != nil {
		return nil, handleMessageError(err)
	}

	marked, err := s.messageRepo.MarkThreadRead(tx, claimID, actor.ID, s.now())
	if err != nil {
		return nil, handleMessageError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, handleMessageError(err)
	}

	s.metrics.IncMessagesPosted()
	logger.CtxInfo(ctx, "message posted", "claim_id", claimID, "message_id", message.ID, "marked_read", marked)

	go func(ctx context.Context) {
		logNotifyFailure(ctx, "new_message", s.notifier.NotifyNewMessage(ctx, db, message, claim))
	}(detach(ctx))

	return dto.NewMessageResponse(message), nil
}

func (s *messageService) MarkThreadRead(ctx context.Context, db *gorm.DB, actor policy.Actor, claimID string) (int64, error) {
	claim, err := s.claimRepo.FindByID(db.WithContext(ctx), claimID)
	if err != nil {
		return 0, handleClaimError(err)
	}
	if !policy.CanView(actor, claim) {
		return 0, apperrors.ErrThreadAccessDenied
	}

	updated, err := s.messageRepo.MarkThreadRead(db.WithContext(ctx), claimID, actor.ID, s.now())
	if err != nil {
		return 0, handleMessageError(err)
	}
	return updated, nil
}

// MarkMessageRead is a no-op when the actor wrote the message.
func (s *messageService) MarkMessageRead(ctx context.Context, db *gorm.DB, actor policy.Actor, messageID string) (*dto.MessageResponse, error) {
	message, err := s.messageRepo.FindByID(db.WithContext(ctx), messageID)
	if err != nil {
		return nil, handleMessageError(err)
	}
	claim, err := s.claimRepo.FindByID(db.WithContext(ctx), message.ClaimID)
	if err != nil {
		return nil, handleClaimError(err)
	}
	if !policy.CanMarkMessageRead(actor, claim) {
		return nil, apperrors.ErrThreadAccessDenied
	}

	if message.SenderID == actor.ID || message.IsRead {
		return dto.NewMessageResponse(message), nil
	}

	at := s.now()
	if err := s.messageRepo.MarkRead(db.WithContext(ctx), messageID, at); err != nil {
		return nil, handleMessageError(err)
	}
	message.IsRead = true
	message.ReadAt = &at
	return dto.NewMessageResponse(message), nil
}

func claimTitle(claim *models.Claim) string {
	if claim == nil || claim.Donation == nil {
		return ""
	}
	return claim.Donation.Title
}

func handleMessageError(err error) error {
	if errors.Is(err, repositories.ErrMessageNotFound) || isRecordNotFound(err) {
		return apperrors.ErrMessageNotFound.WithError(err)
	}
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		return appErr
	}
	return apperrors.InternalError(err)
}
