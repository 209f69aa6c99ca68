package server

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"resonate/internal/models"
	"resonate/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// updateProfileRequest is the JSON body for PUT /api/auth/profile. Absent
// fields are left untouched.
type updateProfileRequest struct {
	Name      *string         `json:"name"`
	Bio       *string         `json:"bio"`
	Sex       *models.Sex     `json:"sex"`
	Interests *models.SexList `json:"interests"`

	CurrentFavouriteArtist *models.Track `json:"current_favourite_artist"`
	SongForCloudyDays      *models.Track `json:"song_for_cloudy_days"`
	SongToGetYouExcited    *models.Track `json:"song_to_get_you_excited"`
	MyProfileSong          *models.Track `json:"my_profile_song"`
	SongToBeLazyTo         *models.Track `json:"song_to_be_lazy_to"`
	SongForReminiscence    *models.Track `json:"song_for_reminiscence"`
	SongToZoneInto         *models.Track `json:"song_to_zone_into"`
}

func (r *updateProfileRequest) trackMap() map[string]models.Track {
	tracks := map[string]models.Track{}
	put := func(slot string, t *models.Track) {
		if t != nil {
			tracks[slot] = *t
		}
	}
	put("current_favourite_artist", r.CurrentFavouriteArtist)
	put("song_for_cloudy_days", r.SongForCloudyDays)
	put("song_to_get_you_excited", r.SongToGetYouExcited)
	put("my_profile_song", r.MyProfileSong)
	put("song_to_be_lazy_to", r.SongToBeLazyTo)
	put("song_for_reminiscence", r.SongForReminiscence)
	put("song_to_zone_into", r.SongToZoneInto)
	return tracks
}

// GetMyProfile handles GET /api/auth/profile
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.profileService.GetUserByID(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/auth/profile. Accepts JSON, or
// multipart/form-data when a profile picture is included.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	in := service.UpdateProfileInput{UserID: currentUserID(c)}

	if strings.HasPrefix(c.Get("Content-Type"), "multipart/form-data") {
		if err := s.parseMultipartProfile(c, &in); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
	} else {
		var req updateProfileRequest
		if err := c.BodyParser(&req); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid request body"))
		}
		in.Name = req.Name
		in.Bio = req.Bio
		in.Sex = req.Sex
		in.Interests = req.Interests
		in.Tracks = req.trackMap()
	}

	user, err := s.profileService.UpdateProfile(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// parseMultipartProfile fills in from form fields. Track slots and interests
// arrive as JSON-encoded form values.
func (s *Server) parseMultipartProfile(c *fiber.Ctx, in *service.UpdateProfileInput) error {
	form, err := c.MultipartForm()
	if err != nil {
		return err
	}

	getValue := func(key string) *string {
		if vals, ok := form.Value[key]; ok && len(vals) > 0 {
			return &vals[0]
		}
		return nil
	}

	in.Name = getValue("name")
	in.Bio = getValue("bio")
	if v := getValue("sex"); v != nil {
		sex := models.Sex(*v)
		in.Sex = &sex
	}
	// Interests and track slots arrive JSON-encoded. A value that fails to
	// parse is skipped; the rest of the update still applies.
	if v := getValue("interests"); v != nil {
		var interests models.SexList
		if err := json.Unmarshal([]byte(*v), &interests); err == nil {
			in.Interests = &interests
		}
	}

	in.Tracks = map[string]models.Track{}
	for _, slot := range models.TrackSlotNames {
		if v := getValue(slot); v != nil {
			var track models.Track
			if err := json.Unmarshal([]byte(*v), &track); err != nil {
				continue
			}
			in.Tracks[slot] = track
		}
	}

	if file, err := c.FormFile("profile_picture"); err == nil && file != nil {
		ext := filepath.Ext(file.Filename)
		switch strings.ToLower(ext) {
		case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		default:
			return fiber.NewError(fiber.StatusBadRequest, "unsupported image type")
		}
		name := uuid.New().String() + ext
		dest := filepath.Join(s.config.UploadDir, name)
		if err := c.SaveFile(file, dest); err != nil {
			return err
		}
		path := "/uploads/" + name
		in.ProfilePicture = &path
	}

	return nil
}

// GetAllUsers handles GET /api/auth/users
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	users, err := s.profileService.ListUsers(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(users)
}

// GetUserByID handles GET /api/auth/users/:id
func (s *Server) GetUserByID(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	user, err := s.profileService.GetUserByID(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}
