package service

import (
	"context"

	"resonate/internal/middleware"
	"resonate/internal/models"
	"resonate/internal/observability"
	"resonate/internal/repository"
	"resonate/internal/validation"
)

type MessageService struct {
	userRepo repository.UserRepository
	msgRepo  repository.MessageRepository
	pokeRepo repository.PokeRepository
}

func NewMessageService(userRepo repository.UserRepository, msgRepo repository.MessageRepository, pokeRepo repository.PokeRepository) *MessageService {
	return &MessageService{userRepo: userRepo, msgRepo: msgRepo, pokeRepo: pokeRepo}
}

// SendMessage creates a direct message from senderID to recipientID. When the
// recipient has an outstanding poke aimed at the sender, the message also
// consumes that poke and leaves a reply notification for the poker.
func (s *MessageService) SendMessage(ctx context.Context, senderID, recipientID uint, text string) (*models.Message, error) {
	span, ctx := observability.NewSpan(ctx, "message.send")
	defer span.End()

	if senderID == recipientID {
		return nil, models.NewValidationError("you cannot message yourself")
	}
	if err := validation.ValidateMessageText(text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if _, err := s.userRepo.GetByID(ctx, recipientID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Text:        text,
	}
	if err := s.msgRepo.Create(ctx, msg); err != nil {
		span.SetError(err)
		return nil, err
	}
	middleware.MessagesSent.Inc()

	// Messaging back someone who poked you counts as the reply to their poke.
	poke, err := s.pokeRepo.GetFromSender(ctx, recipientID, senderID)
	if err != nil {
		return nil, err
	}
	if poke != nil {
		reply := &models.PokeReply{
			RecipientID: recipientID,
			SenderID:    senderID,
			Text:        text,
		}
		if err := s.pokeRepo.ConsumeWithReply(ctx, poke, reply); err != nil {
			return nil, err
		}
	}

	return msg, nil
}

// GetThread returns the full conversation with another user, oldest first.
func (s *MessageService) GetThread(ctx context.Context, userID, otherID uint) ([]models.Message, error) {
	if _, err := s.userRepo.GetByID(ctx, otherID); err != nil {
		return nil, err
	}
	return s.msgRepo.ListBetween(ctx, userID, otherID)
}

// RecentInbound returns the newest messages sent to the user.
func (s *MessageService) RecentInbound(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.msgRepo.ListRecentInbound(ctx, userID, limit)
}
