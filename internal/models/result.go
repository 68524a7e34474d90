package models

// BatchSize is the fixed number of variants produced per generation attempt.
const BatchSize = 3

// GenerationResult is one rendered redesign variant. Results are immutable
// after creation except for the lazy depth-map attachment.
type GenerationResult struct {
	ID          string `json:"id"`
	ImageURL    string `json:"image_url"`
	DepthMapURL string `json:"depth_map_url,omitempty"`
	// AssetURL is the durable storage copy of the image, set when asset
	// storage is configured. Best-effort; the data URI above stays
	// authoritative.
	AssetURL    string             `json:"asset_url,omitempty"`
	PromptUsed  string             `json:"prompt_used"`
	Timestamp   int64              `json:"timestamp"`
	SourceImage string             `json:"source_image"`
	Settings    GenerationSettings `json:"settings"`
}

// DesignSuggestion is an advisory annotation recomputed per source image and
// never persisted. JSON tags follow the response schema requested from the
// model.
type DesignSuggestion struct {
	ID       string             `json:"id"`
	Text     string             `json:"text"`
	Category SuggestionCategory `json:"category"`
	Box      *BoundingBox       `json:"box_2d,omitempty"`
}

// ProductDimensions are free-text magnitude estimates (e.g. "1.8m").
type ProductDimensions struct {
	Length string `json:"length"`
	Width  string `json:"width"`
	Height string `json:"height"`
}

// ProductItem is a detected shoppable object tied to the result it was
// detected from.
type ProductItem struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Query            string             `json:"query"`
	Category         string             `json:"category"`
	PriceRange       string             `json:"priceRange,omitempty"`
	Box              *BoundingBox       `json:"box_2d,omitempty"`
	Dimensions       *ProductDimensions `json:"dimensions,omitempty"`
	IsSpaceOptimized bool               `json:"isSpaceOptimized,omitempty"`
}

// BudgetItem is one line of a renovation cost estimate.
type BudgetItem struct {
	ID       string         `json:"id"`
	Item     string         `json:"item"`
	CostMin  float64        `json:"costMin"`
	CostMax  float64        `json:"costMax"`
	Category BudgetCategory `json:"category"`
}

func (b BudgetItem) Valid() bool {
	return b.CostMin >= 0 && b.CostMin <= b.CostMax
}

// Enrichment bundles the shoppable and budget data computed once per result.
type Enrichment struct {
	Shopping []ProductItem `json:"shopping"`
	Budget   []BudgetItem  `json:"budget"`
}

// BudgetHistoryEntry links a stored budget breakdown to the result it was
// estimated for.
type BudgetHistoryEntry struct {
	ResultID string       `json:"id"`
	Items    []BudgetItem `json:"items"`
}
