package repository

import (
	"context"

	"resonate/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDuplicatePoke is returned by Create when the sender already has an
// outstanding poke for the recipient.
var ErrDuplicatePoke = models.NewValidationError("you have already poked this user")

// PokeRepository defines the interface for poke data operations
type PokeRepository interface {
	Create(ctx context.Context, poke *models.Poke) error
	GetFromSender(ctx context.Context, senderID, recipientID uint) (*models.Poke, error)
	ListForRecipient(ctx context.Context, recipientID uint) ([]models.Poke, error)
	ConsumeWithReply(ctx context.Context, poke *models.Poke, reply *models.PokeReply) error
	ListRepliesForRecipient(ctx context.Context, recipientID uint) ([]models.PokeReply, error)
}

type pokeRepository struct {
	db *gorm.DB
}

// NewPokeRepository creates a new poke repository
func NewPokeRepository(db *gorm.DB) PokeRepository {
	return &pokeRepository{db: db}
}

// Create inserts the poke, relying on the (sender, recipient) unique index to
// reject duplicates atomically. Returns ErrDuplicatePoke when a poke for the
// pair already exists.
func (r *pokeRepository) Create(ctx context.Context, poke *models.Poke) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sender_id"}, {Name: "recipient_id"}},
			DoNothing: true,
		}).
		Create(poke)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrDuplicatePoke
	}
	return nil
}

// GetFromSender returns the outstanding poke from sender to recipient, or
// (nil, nil) when there is none.
func (r *pokeRepository) GetFromSender(ctx context.Context, senderID, recipientID uint) (*models.Poke, error) {
	var poke models.Poke
	err := r.db.WithContext(ctx).
		Where("sender_id = ? AND recipient_id = ?", senderID, recipientID).
		First(&poke).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &poke, nil
}

func (r *pokeRepository) ListForRecipient(ctx context.Context, recipientID uint) ([]models.Poke, error) {
	var pokes []models.Poke
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Find(&pokes).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return pokes, nil
}

// ConsumeWithReply creates the reply artifact and deletes the originating poke
// in one transaction, so a poke yields at most one reply.
func (r *pokeRepository) ConsumeWithReply(ctx context.Context, poke *models.Poke, reply *models.PokeReply) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(reply).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Poke{}, poke.ID).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *pokeRepository) ListRepliesForRecipient(ctx context.Context, recipientID uint) ([]models.PokeReply, error) {
	var replies []models.PokeReply
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Find(&replies).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return replies, nil
}
