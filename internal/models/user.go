package models

import (
	"time"

	"github.com/google/uuid"
)

// SavedPreset is a named settings snapshot. Names are not required to be
// unique; identity is the generated id.
type SavedPreset struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	RoomType   RoomType       `json:"room_type"`
	Style      StylePreset    `json:"style"`
	Lighting   LightingOption `json:"lighting"`
	Creativity int            `json:"creativity"`
	Prompt     string         `json:"prompt"`
	Dimensions *Dimensions    `json:"dimensions,omitempty"`
}

type UserPreferences struct {
	DefaultRoomType RoomType       `json:"default_room_type"`
	DefaultStyle    StylePreset    `json:"default_style"`
	DefaultLighting LightingOption `json:"default_lighting"`
	SavedPresets    []SavedPreset  `json:"saved_presets"`
}

func DefaultPreferences() UserPreferences {
	return UserPreferences{
		DefaultRoomType: RoomLivingRoom,
		DefaultStyle:    StyleModern,
		DefaultLighting: LightingDaylight,
		SavedPresets:    []SavedPreset{},
	}
}

type UserProfile struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Avatar      string          `json:"avatar"`
	AvatarStyle AvatarStyle     `json:"avatar_style"`
	IsPro       bool            `json:"is_pro"`
	JoinedAt    int64           `json:"joined_at"`
	Gender      Gender          `json:"gender"`
	Preferences UserPreferences `json:"preferences"`
}

// Account is the registered-account record: credential plus profile. The
// credential hash never leaves the store layer.
type Account struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Profile      UserProfile
	CreatedAt    time.Time
}
