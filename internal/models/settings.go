package models

import (
	"fmt"
	"unicode/utf8"
)

const maxPromptLength = 500

// Dimensions carries optional metric room measurements. Field-level
// optionality is explicit: a nil pointer means the user never entered that
// measurement, a set pointer must be a positive value in meters.
type Dimensions struct {
	Length *float64 `json:"length,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

// Any reports whether at least one measurement is present.
func (d *Dimensions) Any() bool {
	return d != nil && (d.Length != nil || d.Width != nil || d.Height != nil)
}

func (d *Dimensions) clone() *Dimensions {
	if d == nil {
		return nil
	}
	out := &Dimensions{}
	if d.Length != nil {
		v := *d.Length
		out.Length = &v
	}
	if d.Width != nil {
		v := *d.Width
		out.Width = &v
	}
	if d.Height != nil {
		v := *d.Height
		out.Height = &v
	}
	return out
}

func (d *Dimensions) validate() error {
	if d == nil {
		return nil
	}
	for name, v := range map[string]*float64{"length": d.Length, "width": d.Width, "height": d.Height} {
		if v != nil && *v <= 0 {
			return fmt.Errorf("dimension %s must be positive, got %v", name, *v)
		}
	}
	return nil
}

// GenerationSettings captures user intent for one generation attempt.
// Settings attached to a result are immutable snapshots: later edits to the
// live settings never alter a stored result.
type GenerationSettings struct {
	Prompt            string         `json:"prompt"`
	RoomType          RoomType       `json:"room_type"`
	Style             StylePreset    `json:"style"`
	Lighting          LightingOption `json:"lighting"`
	Creativity        int            `json:"creativity"`
	PreserveStructure bool           `json:"preserve_structure"`
	AutoSuggest       bool           `json:"auto_suggest"`
	Dimensions        *Dimensions    `json:"dimensions,omitempty"`
}

// DefaultSettings mirrors the initial editor state.
func DefaultSettings() GenerationSettings {
	return GenerationSettings{
		RoomType:          RoomLivingRoom,
		Style:             StyleModern,
		Lighting:          LightingDaylight,
		Creativity:        50,
		PreserveStructure: true,
	}
}

func (s GenerationSettings) Validate() error {
	if utf8.RuneCountInString(s.Prompt) > maxPromptLength {
		return fmt.Errorf("prompt exceeds %d characters", maxPromptLength)
	}
	if !s.RoomType.Valid() {
		return fmt.Errorf("unknown room type %q", s.RoomType)
	}
	if !s.Style.Valid() {
		return fmt.Errorf("unknown style preset %q", s.Style)
	}
	if !s.Lighting.Valid() {
		return fmt.Errorf("unknown lighting option %q", s.Lighting)
	}
	if s.Creativity < 0 || s.Creativity > 100 {
		return fmt.Errorf("creativity must be in [0,100], got %d", s.Creativity)
	}
	return s.Dimensions.validate()
}

// Snapshot returns a deep copy safe to attach to a result.
func (s GenerationSettings) Snapshot() GenerationSettings {
	out := s
	out.Dimensions = s.Dimensions.clone()
	return out
}
