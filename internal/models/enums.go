package models

// Closed enumerations for user-facing settings. Unknown values coming in from
// clients or old persisted records are normalized through the Default arms
// rather than passed through.

type RoomType string

const (
	RoomBedroom    RoomType = "Bedroom"
	RoomLivingRoom RoomType = "Living Room / Hall"
	RoomKitchen    RoomType = "Kitchen"
	RoomBathroom   RoomType = "Bathroom"
	RoomOffice     RoomType = "Office"
	RoomDiningRoom RoomType = "Dining Room"
	RoomBalcony    RoomType = "Balcony"
	RoomStudio     RoomType = "Studio"
	RoomOutdoor    RoomType = "Outdoor Area"
	RoomCustom     RoomType = "Custom Room Type"
)

var roomTypes = []RoomType{
	RoomBedroom, RoomLivingRoom, RoomKitchen, RoomBathroom, RoomOffice,
	RoomDiningRoom, RoomBalcony, RoomStudio, RoomOutdoor, RoomCustom,
}

func (r RoomType) Valid() bool {
	for _, v := range roomTypes {
		if r == v {
			return true
		}
	}
	return false
}

// Normalize returns r when it is a known room type and the default otherwise.
func (r RoomType) Normalize() RoomType {
	if r.Valid() {
		return r
	}
	return RoomLivingRoom
}

type StylePreset string

const (
	StyleModern             StylePreset = "Modern"
	StyleScandinavian       StylePreset = "Scandinavian"
	StyleJapandi            StylePreset = "Japandi"
	StyleMidCentury         StylePreset = "Mid-century"
	StyleMinimalTraditional StylePreset = "Minimal Traditional"
	StyleIndustrial         StylePreset = "Industrial"
	StyleBohemian           StylePreset = "Bohemian"
)

var stylePresets = []StylePreset{
	StyleModern, StyleScandinavian, StyleJapandi, StyleMidCentury,
	StyleMinimalTraditional, StyleIndustrial, StyleBohemian,
}

func (s StylePreset) Valid() bool {
	for _, v := range stylePresets {
		if s == v {
			return true
		}
	}
	return false
}

func (s StylePreset) Normalize() StylePreset {
	if s.Valid() {
		return s
	}
	return StyleModern
}

type LightingOption string

const (
	LightingDaylight   LightingOption = "Daylight"
	LightingWarmIndoor LightingOption = "Warm indoor"
	LightingGoldenHour LightingOption = "Golden hour"
	LightingNeutral    LightingOption = "Neutral"
)

var lightingOptions = []LightingOption{
	LightingDaylight, LightingWarmIndoor, LightingGoldenHour, LightingNeutral,
}

func (l LightingOption) Valid() bool {
	for _, v := range lightingOptions {
		if l == v {
			return true
		}
	}
	return false
}

func (l LightingOption) Normalize() LightingOption {
	if l.Valid() {
		return l
	}
	return LightingDaylight
}

// SuggestionCategory classifies a design suggestion.
type SuggestionCategory string

const (
	SuggestionDecor     SuggestionCategory = "decor"
	SuggestionLighting  SuggestionCategory = "lighting"
	SuggestionFurniture SuggestionCategory = "furniture"
	SuggestionColor     SuggestionCategory = "color"
)

func (s SuggestionCategory) Valid() bool {
	switch s {
	case SuggestionDecor, SuggestionLighting, SuggestionFurniture, SuggestionColor:
		return true
	}
	return false
}

// BudgetCategory is open-ended in practice: the model occasionally invents
// categories, so consumers map unknowns through BudgetOther.
type BudgetCategory string

const (
	BudgetFurniture BudgetCategory = "Furniture"
	BudgetMaterial  BudgetCategory = "Material"
	BudgetLabor     BudgetCategory = "Labor"
	BudgetDecor     BudgetCategory = "Decor"
	BudgetOther     BudgetCategory = "Other"
)

func (b BudgetCategory) Normalize() BudgetCategory {
	switch b {
	case BudgetFurniture, BudgetMaterial, BudgetLabor, BudgetDecor:
		return b
	}
	return BudgetOther
}

type Gender string

const (
	GenderMale    Gender = "Male"
	GenderFemale  Gender = "Female"
	GenderNeutral Gender = "Neutral"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderNeutral:
		return true
	}
	return false
}

func (g Gender) Normalize() Gender {
	if g.Valid() {
		return g
	}
	return GenderNeutral
}

type AvatarStyle string

const (
	AvatarAvataaars  AvatarStyle = "avataaars"
	AvatarLorelei    AvatarStyle = "lorelei"
	AvatarBottts     AvatarStyle = "bottts"
	AvatarNotionists AvatarStyle = "notionists"
	AvatarPixelArt   AvatarStyle = "pixel-art"
)

func (a AvatarStyle) Valid() bool {
	switch a {
	case AvatarAvataaars, AvatarLorelei, AvatarBottts, AvatarNotionists, AvatarPixelArt:
		return true
	}
	return false
}

func (a AvatarStyle) Normalize() AvatarStyle {
	if a.Valid() {
		return a
	}
	return AvatarAvataaars
}
