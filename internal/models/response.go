package models

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type AuthResponse struct {
	Token   string      `json:"token"`
	Profile UserProfile `json:"profile"`
}

type GenerateResponse struct {
	Epoch  uint64 `json:"epoch"`
	Status string `json:"status"`
}

// SessionResponse is the authoritative view of a user's live session.
type SessionResponse struct {
	State        string                `json:"state"`
	Progress     int                   `json:"progress"`
	StageNote    string                `json:"stage_note,omitempty"`
	ErrorMessage string                `json:"error_message,omitempty"`
	HasSource    bool                  `json:"has_source"`
	HasMask      bool                  `json:"has_mask"`
	ActiveIndex  int                   `json:"active_index"`
	Batch        []GenerationResult    `json:"batch"`
	Enrichment   map[string]Enrichment `json:"enrichment"`
	Settings     GenerationSettings    `json:"settings"`
	Suggestions  []DesignSuggestion    `json:"suggestions"`
	Measurements []ManualMeasurement   `json:"measurements"`
}

type DepthResponse struct {
	ResultID    string `json:"result_id"`
	DepthMapURL string `json:"depth_map_url"`
}

type HistoryResponse struct {
	History []GenerationResult `json:"history"`
}

type ProjectsResponse struct {
	Projects []Project `json:"projects"`
}

type SaveProjectResponse struct {
	ProjectID string `json:"project_id"`
	Status    string `json:"status"`
}

type SuggestionsResponse struct {
	Suggestions []DesignSuggestion `json:"suggestions"`
}
