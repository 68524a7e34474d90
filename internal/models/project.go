package models

// Project is the durable snapshot written by "Sync Project": one result, its
// enrichment, the full history at save time, and the settings/source image.
type Project struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	UserID        string             `json:"user_id,omitempty"`
	UpdatedAt     int64              `json:"updated_at"`
	SourceImage   string             `json:"source_image"`
	Settings      GenerationSettings `json:"settings"`
	Result        *GenerationResult  `json:"result"`
	History       []GenerationResult `json:"history"`
	ShoppingItems []ProductItem      `json:"shopping_items"`
	BudgetItems   []BudgetItem       `json:"budget_items"`
}
