package server

import (
	"context"

	"resonate/internal/config"
	"resonate/internal/models"
	"resonate/internal/service"
	"resonate/internal/spotify"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.User), args.Error(1)
}

// MockPokeRepository is a mock of the PokeRepository interface
type MockPokeRepository struct {
	mock.Mock
}

func (m *MockPokeRepository) Create(ctx context.Context, poke *models.Poke) error {
	args := m.Called(ctx, poke)
	return args.Error(0)
}

func (m *MockPokeRepository) GetFromSender(ctx context.Context, senderID, recipientID uint) (*models.Poke, error) {
	args := m.Called(ctx, senderID, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Poke), args.Error(1)
}

func (m *MockPokeRepository) ListForRecipient(ctx context.Context, recipientID uint) ([]models.Poke, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).([]models.Poke), args.Error(1)
}

func (m *MockPokeRepository) ConsumeWithReply(ctx context.Context, poke *models.Poke, reply *models.PokeReply) error {
	args := m.Called(ctx, poke, reply)
	return args.Error(0)
}

func (m *MockPokeRepository) ListRepliesForRecipient(ctx context.Context, recipientID uint) ([]models.PokeReply, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).([]models.PokeReply), args.Error(1)
}

// MockMessageRepository is a mock of the MessageRepository interface
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *models.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepository) ListBetween(ctx context.Context, userA, userB uint) ([]models.Message, error) {
	args := m.Called(ctx, userA, userB)
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageRepository) ListRecentInbound(ctx context.Context, recipientID uint, limit int) ([]models.Message, error) {
	args := m.Called(ctx, recipientID, limit)
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageRepository) ExistsBetween(ctx context.Context, userA, userB uint) (bool, error) {
	args := m.Called(ctx, userA, userB)
	return args.Bool(0), args.Error(1)
}

// newTestServer wires a Server around mock repositories.
func newTestServer(userRepo *MockUserRepository, pokeRepo *MockPokeRepository, msgRepo *MockMessageRepository) *Server {
	cfg := &config.Config{
		JWTSecret:           "test_secret",
		Env:                 "test",
		SpotifyClientID:     "client-id",
		SpotifyClientSecret: "client-secret",
		SpotifyRedirectURI:  "http://localhost:5000/api/spotify/callback",
	}
	s := &Server{
		config:      cfg,
		userRepo:    userRepo,
		pokeRepo:    pokeRepo,
		messageRepo: msgRepo,
	}
	s.profileService = service.NewProfileService(userRepo)
	s.pokeService = service.NewPokeService(userRepo, pokeRepo, msgRepo)
	s.messageService = service.NewMessageService(userRepo, msgRepo, pokeRepo)
	s.spotifyClient = spotify.NewClient(spotify.Config{
		ClientID:     cfg.SpotifyClientID,
		ClientSecret: cfg.SpotifyClientSecret,
		RedirectURI:  cfg.SpotifyRedirectURI,
	})
	return s
}
