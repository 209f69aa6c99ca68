// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"resonate/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	// #nosec G404: acceptable for seeding
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

var sexes = []models.Sex{models.SexMale, models.SexFemale, models.SexOther}

// randomTrack builds a plausible song reference.
func (f *Factory) randomTrack() models.Track {
	return models.Track{
		Name:     gofakeit.HipsterSentence(3),
		Artist:   gofakeit.Name(),
		URI:      fmt.Sprintf("spotify:track:%s", gofakeit.LetterN(22)),
		CoverArt: fmt.Sprintf("https://picsum.photos/seed/%s/300/300", gofakeit.UUID()),
	}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	user := &models.User{
		Username:       gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Password:       string(hashedPassword),
		Name:           gofakeit.Name(),
		Bio:            gofakeit.HipsterSentence(8),
		ProfilePicture: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Sex:            sexes[f.r.Intn(len(sexes))],
		Interests:      models.SexList{sexes[f.r.Intn(len(sexes))]},

		CurrentFavouriteArtist: f.randomTrack(),
		MyProfileSong:          f.randomTrack(),
		SongForCloudyDays:      f.randomTrack(),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePoke persists a poke from sender to recipient with a random song.
func (f *Factory) CreatePoke(sender, recipient *models.User) (*models.Poke, error) {
	poke := &models.Poke{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Song:        f.randomTrack(),
	}
	if err := f.db.Create(poke).Error; err != nil {
		return nil, err
	}
	return poke, nil
}

// CreateMessage persists a direct message between two users.
func (f *Factory) CreateMessage(sender, recipient *models.User, overrides ...func(*models.Message)) (*models.Message, error) {
	message := &models.Message{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Text:        gofakeit.Sentence(10),
	}

	for _, override := range overrides {
		override(message)
	}

	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// Seeder orchestrates bulk data creation.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder for the given DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded rows.
func (s *Seeder) ClearAll() error {
	for _, model := range []interface{}{
		&models.Message{}, &models.PokeReply{}, &models.Poke{}, &models.User{},
	} {
		if err := s.db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	log.Println("Cleared existing data")
	return nil
}

// SeedCommunity creates numUsers users with random pokes and message threads
// between them.
func (s *Seeder) SeedCommunity(numUsers int) ([]*models.User, error) {
	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))

	if len(users) < 2 {
		return users, nil
	}

	r := s.factory.r
	pokes := 0
	for _, sender := range users {
		// each user pokes roughly a third of the others, at most 5
		for i := 0; i < r.Intn(5); i++ {
			recipient := users[r.Intn(len(users))]
			if recipient.ID == sender.ID {
				continue
			}
			if _, err := s.factory.CreatePoke(sender, recipient); err != nil {
				// duplicate pair, skip
				continue
			}
			pokes++
		}
	}
	log.Printf("Created %d pokes", pokes)

	messages := 0
	for i := 0; i < len(users)*3; i++ {
		a := users[r.Intn(len(users))]
		b := users[r.Intn(len(users))]
		if a.ID == b.ID {
			continue
		}
		if _, err := s.factory.CreateMessage(a, b); err != nil {
			return nil, err
		}
		messages++
	}
	log.Printf("Created %d messages", messages)

	return users, nil
}
