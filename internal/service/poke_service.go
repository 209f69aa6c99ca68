package service

import (
	"context"

	"resonate/internal/middleware"
	"resonate/internal/models"
	"resonate/internal/observability"
	"resonate/internal/repository"
	"resonate/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

type PokeService struct {
	userRepo repository.UserRepository
	pokeRepo repository.PokeRepository
	msgRepo  repository.MessageRepository
}

func NewPokeService(userRepo repository.UserRepository, pokeRepo repository.PokeRepository, msgRepo repository.MessageRepository) *PokeService {
	return &PokeService{userRepo: userRepo, pokeRepo: pokeRepo, msgRepo: msgRepo}
}

// SendPoke creates a poke from senderID to recipientID carrying song.
// A sender gets one outstanding poke per recipient; the unique index makes the
// duplicate check race-free.
func (s *PokeService) SendPoke(ctx context.Context, senderID, recipientID uint, song models.Track) (*models.Poke, error) {
	span, ctx := observability.NewSpan(ctx, "poke.send")
	defer span.End()
	span.AddAttributes(
		attribute.Int("poke.sender_id", int(senderID)),
		attribute.Int("poke.recipient_id", int(recipientID)),
	)

	if senderID == recipientID {
		return nil, models.NewValidationError("you cannot poke yourself")
	}
	if err := validation.ValidatePokeSong(song); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if _, err := s.userRepo.GetByID(ctx, recipientID); err != nil {
		return nil, err
	}

	poke := &models.Poke{
		SenderID:    senderID,
		RecipientID: recipientID,
		Song:        song,
	}
	if err := s.pokeRepo.Create(ctx, poke); err != nil {
		if err == repository.ErrDuplicatePoke {
			middleware.PokesSent.WithLabelValues("duplicate").Inc()
		}
		span.SetError(err)
		return nil, err
	}

	middleware.PokesSent.WithLabelValues("sent").Inc()
	return poke, nil
}

// ListNotifications returns the pending pokes for a user, newest first, each
// enriched with the sender summary and whether the pair has message history.
func (s *PokeService) ListNotifications(ctx context.Context, userID uint) ([]models.PokeNotification, error) {
	pokes, err := s.pokeRepo.ListForRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}

	notifications := make([]models.PokeNotification, 0, len(pokes))
	for _, p := range pokes {
		n := models.PokeNotification{
			ID:        p.ID,
			Song:      p.Song,
			CreatedAt: p.CreatedAt,
		}
		if p.Sender != nil {
			n.Sender = p.Sender.Summary()
		}
		messaged, err := s.msgRepo.ExistsBetween(ctx, userID, p.SenderID)
		if err != nil {
			return nil, err
		}
		n.HasMessaged = messaged
		notifications = append(notifications, n)
	}
	return notifications, nil
}

// ListReplies returns the poke replies addressed to a user, newest first.
func (s *PokeService) ListReplies(ctx context.Context, userID uint) ([]models.PokeReply, error) {
	return s.pokeRepo.ListRepliesForRecipient(ctx, userID)
}
