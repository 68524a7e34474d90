package gemini

import "google.golang.org/genai"

// Response schemas for the JSON operations. The service is asked for
// application/json constrained to these shapes; anything that fails to parse
// or validate against them is treated as a failed call, never a partial
// success.

var boxSchema = &genai.Schema{
	Type:        genai.TypeArray,
	Items:       &genai.Schema{Type: genai.TypeNumber},
	Description: "Precise bounding box [ymin, xmin, ymax, xmax] normalized 0-1000",
}

var suggestionSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":       {Type: genai.TypeString},
			"text":     {Type: genai.TypeString},
			"category": {Type: genai.TypeString},
			"box_2d":   boxSchema,
		},
		Required: []string{"id", "text", "category", "box_2d"},
	},
}

var productSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":         {Type: genai.TypeString},
			"name":       {Type: genai.TypeString},
			"query":      {Type: genai.TypeString},
			"category":   {Type: genai.TypeString},
			"priceRange": {Type: genai.TypeString},
			"dimensions": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"length": {Type: genai.TypeString},
					"width":  {Type: genai.TypeString},
					"height": {Type: genai.TypeString},
				},
				Required: []string{"length", "width", "height"},
			},
			"box_2d":           boxSchema,
			"isSpaceOptimized": {Type: genai.TypeBoolean},
		},
		Required: []string{"id", "name", "query", "category", "box_2d", "dimensions", "isSpaceOptimized"},
	},
}

var budgetSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":       {Type: genai.TypeString},
			"item":     {Type: genai.TypeString},
			"costMin":  {Type: genai.TypeNumber},
			"costMax":  {Type: genai.TypeNumber},
			"category": {Type: genai.TypeString},
		},
		Required: []string{"id", "item", "costMin", "costMax", "category"},
	},
}
