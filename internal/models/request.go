package models

type RegisterRequest struct {
	Email       string      `json:"email" binding:"required,email"`
	Password    string      `json:"password" binding:"required,min=8"`
	Name        string      `json:"name" binding:"required"`
	Gender      Gender      `json:"gender,omitempty"`
	AvatarStyle AvatarStyle `json:"avatar_style,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SetSourceRequest struct {
	// Image is the uploaded room photo as a data URI.
	Image string `json:"image" binding:"required"`
}

type SetMaskRequest struct {
	// Mask is a monochrome occlusion mask aligned to the source image.
	// Empty clears the mask.
	Mask string `json:"mask"`
}

type MeasurementRequest struct {
	Start MeasurementPoint `json:"start"`
	End   MeasurementPoint `json:"end"`
}

type SaveProjectRequest struct {
	// Name is optional; defaults to "<style> Layout Study".
	Name string `json:"name,omitempty"`
}

type SavePresetRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateProfileRequest struct {
	Name        string           `json:"name,omitempty"`
	Avatar      string           `json:"avatar,omitempty"`
	AvatarStyle AvatarStyle      `json:"avatar_style,omitempty"`
	Gender      Gender           `json:"gender,omitempty"`
	Preferences *UserPreferences `json:"preferences,omitempty"`
}
