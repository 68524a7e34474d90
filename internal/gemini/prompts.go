package gemini

import (
	"fmt"
	"strings"

	"lumina-backend/internal/models"
)

func suggestionPrompt(roomType models.RoomType) string {
	room := string(roomType)
	if room == "" {
		room = "Room"
	}
	return fmt.Sprintf(`Role: Professional Real-Estate Interior Stager.
Task: Identify 3-4 high-impact, BUILDABLE improvements for this %s.

STRICT CONSTRAINTS:
- Suggest only REAL-WORLD items (market-ready furniture, standard flooring, real light fixtures).
- Provide a tight, accurate bounding box [ymin, xmin, ymax, xmax] (scale 0-1000) where the item should be placed.
- Focus on ergonomic flow and premium retail silhouettes.`, room)
}

// dimensionConstraint renders the metric clause of the orchestration prompt.
// Unset fields show as N/A; a fully unset dimension block switches to the
// scale-inference clause instead.
func dimensionConstraint(dims *models.Dimensions) string {
	if !dims.Any() {
		return "Dimensions not provided; infer scale strictly from the input image without altering proportions."
	}
	format := func(v *float64) string {
		if v == nil {
			return "N/A"
		}
		return fmt.Sprintf("%g", *v)
	}
	return fmt.Sprintf("DIMENSIONAL CONSTRAINTS (METRIC ONLY): Length: %sm, Width: %sm, Height: %sm. Created exactly to these 1:1 scale measurements in meters.",
		format(dims.Length), format(dims.Width), format(dims.Height))
}

func orchestrationPrompt(settings models.GenerationSettings) string {
	return fmt.Sprintf(`Role: Master Orchestration Engine and Architect.
Task: Convert user vision into a technical redesign brief.

IMMUTABLE ARCHITECTURAL GROUND TRUTH RULES:
1. Use the provided image as the EXACT structural reference.
2. Do NOT change, remove, shift, resize, replace, or hallucinate any architectural elements.
3. Strictly preserve: Original room layout and proportions, exact wall positions and dimensions, all windows (number, position, size, shape, and frame), doors, openings, corners, edges, ceiling and floor boundaries.
4. Windows must remain windows. Do NOT replace windows with walls or solid surfaces. Do NOT cover, block, or modify windows in any way.
5. The geometry and structure must remain 1:1 identical to the input image.
6. %s

LAYOUT GENERATION RULES:
- Every design must be visually distinct and structurally different in furniture arrangement.
- Each layout must look like a completely different design concept by a different architect.
- Layouts must differ in at least: Furniture placement, Furniture types, Design theme (e.g. Modern, Japandi, Industrial, Luxury), Color palette, Spatial usage, and Room flow.
- NO SIMILARITY ALLOWED. Radically different interior layouts within the same fixed architectural shell.

Context:
- Room: %s
- User Request: "%s"
- Style: %s
- Lighting: %s

Output a single dense paragraph of technical spatial and stylistic instructions for high-fidelity rendering.`,
		dimensionConstraint(settings.Dimensions),
		settings.RoomType, settings.Prompt, settings.Style, settings.Lighting)
}

// fallbackInstruction is the deterministic template used when instruction
// synthesis is unreachable. The pipeline must always have an instruction to
// proceed with.
func fallbackInstruction(settings models.GenerationSettings) string {
	return fmt.Sprintf("A %s %s with real-world furniture and premium finishes.",
		settings.Style, settings.RoomType)
}

// architecturalConstraints is embedded in every image synthesis request: the
// structural ground truth plus an anti-similarity negative prompt so repeated
// calls with different layout directives do not converge.
const architecturalConstraints = `IMMUTABLE ARCHITECTURAL GROUND TRUTH:
- Use provided image as EXACT structural reference.
- NO geometric/structural changes. Walls, windows, doors, and proportions must stay 1:1 identical.
- Windows must REMAIN windows. Do not block or replace them.

LAYOUT GENERATION RULES:
- Similarity between layouts is NOT allowed.
- Generate a radically unique interior layout.
- Change furniture types, placement, color palette, and zoning significantly.
- This must look like a completely new design concept compared to other variations.

NEGATIVE PROMPT:
remove window, missing window, wall instead of window, altered layout, structural change, geometry change, incorrect dimensions, scale mismatch, resized room, extra wall, blocked window, hallucinated structure, shifted furniture outside walls, modified openings, changed proportions, repeated layout, mirrored layout, slight variation only, same furniture logic, same zoning, same focal point.`

func renderPrompt(instruction string) string {
	return fmt.Sprintf(`TASK: High-Fidelity Room Re-staging.
%s

DESIGN INSTRUCTIONS:
1. Apply design: %s.
2. Strictly follow the unique spatial logic, furniture types, and flow requested.
3. 8k photo-realistic quality, professional lighting.`, architecturalConstraints, instruction)
}

// maskDirective confines changes to the painted region.
const maskDirective = "CRITICAL: ONLY redesign area highlighted in mask. The rest of the image MUST remain 100% identical. Structural shell is locked."

func shoppingPrompt(settings *models.GenerationSettings, instruction string) string {
	intent := "N/A"
	if settings != nil && strings.TrimSpace(settings.Prompt) != "" {
		intent = settings.Prompt
	}
	brief := "N/A"
	if strings.TrimSpace(instruction) != "" {
		brief = instruction
	}
	return fmt.Sprintf(`Task: Object Detection and Product Grounding.
Analyze this interior and detect exactly 4 real-world furniture/decor items.

CONTEXT FOR MATCHING:
- User Intent: "%s"
- Design Brief: "%s"

STRICT GROUNDING REQUIREMENT:
- For each item, you MUST provide a tight bounding box [ymin, xmin, ymax, xmax] (scale 0-1000) that wraps the object perfectly.

DATA FIELDS:
- query: A specific search string for a real e-commerce engine.
- dimensions: Real-world estimates in meters.`, intent, brief)
}

func budgetPrompt(roomType models.RoomType) string {
	prompt := "Contractor Estimator Mode. Provide real-world market costs in INR for materials and furniture shown in this redesign."
	if roomType != "" {
		prompt += fmt.Sprintf(" Room context: %s.", roomType)
	}
	return prompt
}

const depthPrompt = "Render a high-precision grayscale depth map of this interior for 3D reconstruction."

func distancePrompt(start, end models.MeasurementPoint) string {
	return fmt.Sprintf("Using parallax and known objects in this image, estimate the distance between P1[%g, %g] and P2[%g, %g]. Respond ONLY with the value and unit (meters).",
		start.X, start.Y, end.X, end.Y)
}
