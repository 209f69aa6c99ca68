// Package models contains data structures for the application's domain models.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Sex is the self-identified sex of a user. The same values are used for
// the interests list.
type Sex string

const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
	SexOther  Sex = "Other"
)

// ValidSex reports whether s is one of the accepted values.
func ValidSex(s Sex) bool {
	switch s {
	case SexMale, SexFemale, SexOther:
		return true
	}
	return false
}

// SexList is a set of Sex values persisted as a JSON column.
type SexList []Sex

// Value implements driver.Valuer.
func (l SexList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *SexList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into SexList", value)
	}
}

// User represents an account in the Resonate application.
//
// The seven track columns are the named profile song slots. Each is a JSON
// column holding a Track, empty until the user fills it in.
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Username       string         `gorm:"unique;not null" json:"username"`
	Password       string         `gorm:"not null" json:"-"`
	Name           string         `json:"name"`
	Bio            string         `json:"bio"`
	ProfilePicture string         `json:"profile_picture"`
	Sex            Sex            `json:"sex"`
	Interests      SexList        `gorm:"type:json" json:"interests"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	CurrentFavouriteArtist Track `gorm:"type:json" json:"current_favourite_artist"`
	SongForCloudyDays      Track `gorm:"type:json" json:"song_for_cloudy_days"`
	SongToGetYouExcited    Track `gorm:"type:json" json:"song_to_get_you_excited"`
	MyProfileSong          Track `gorm:"type:json" json:"my_profile_song"`
	SongToBeLazyTo         Track `gorm:"type:json" json:"song_to_be_lazy_to"`
	SongForReminiscence    Track `gorm:"type:json" json:"song_for_reminiscence"`
	SongToZoneInto         Track `gorm:"type:json" json:"song_to_zone_into"`
}

// TrackSlotNames lists the accepted profile song slot field names, as they
// appear in update payloads.
var TrackSlotNames = []string{
	"current_favourite_artist",
	"song_for_cloudy_days",
	"song_to_get_you_excited",
	"my_profile_song",
	"song_to_be_lazy_to",
	"song_for_reminiscence",
	"song_to_zone_into",
}

// TrackSlot returns a pointer to the slot with the given payload name,
// or nil if the name is not a slot.
func (u *User) TrackSlot(name string) *Track {
	switch name {
	case "current_favourite_artist":
		return &u.CurrentFavouriteArtist
	case "song_for_cloudy_days":
		return &u.SongForCloudyDays
	case "song_to_get_you_excited":
		return &u.SongToGetYouExcited
	case "my_profile_song":
		return &u.MyProfileSong
	case "song_to_be_lazy_to":
		return &u.SongToBeLazyTo
	case "song_for_reminiscence":
		return &u.SongForReminiscence
	case "song_to_zone_into":
		return &u.SongToZoneInto
	}
	return nil
}

// UserSummary is the slim user view embedded in pokes, replies and listings.
type UserSummary struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profile_picture"`
}

// Summary returns the slim view of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:             u.ID,
		Username:       u.Username,
		Name:           u.Name,
		ProfilePicture: u.ProfilePicture,
	}
}
