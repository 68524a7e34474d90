package supabase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina-backend/internal/supabase"
)

func TestAssetStorage_PublicURL(t *testing.T) {
	s, err := supabase.NewAssetStorage("https://project.supabase.co/", "service-key", "generated-layouts")
	require.NoError(t, err)

	url := s.PublicURL("users/u1/assets/variant_r1.png")

	// The trailing slash on the base URL must not double up.
	assert.Equal(t,
		"https://project.supabase.co/storage/v1/object/public/generated-layouts/users/u1/assets/variant_r1.png",
		url)
}

func TestGenerationProgressPayload(t *testing.T) {
	payload := supabase.GenerationProgressPayload("rendering_variant", 65, "Rendering Layout 02: Boutique Maximalist...")

	assert.Equal(t, "rendering_variant", payload["state"])
	assert.Equal(t, 65, payload["progress"])
	assert.Equal(t, "Rendering Layout 02: Boutique Maximalist...", payload["note"])
}

func TestGenerationCompletePayload(t *testing.T) {
	payload := supabase.GenerationCompletePayload(3, "a dense technical brief")

	assert.Equal(t, "complete", payload["status"])
	assert.Equal(t, 100, payload["progress"])
	assert.Equal(t, 3, payload["batch_size"])
	assert.Equal(t, "a dense technical brief", payload["instruction"])
}

func TestProjectSavedPayload(t *testing.T) {
	payload := supabase.ProjectSavedPayload("r1")

	assert.Equal(t, "saved", payload["status"])
	assert.Equal(t, "r1", payload["project_id"])
}

func TestGenerationFailedPayload(t *testing.T) {
	payload := supabase.GenerationFailedPayload("render failed")

	assert.Equal(t, "failed", payload["status"])
	assert.Equal(t, "render failed", payload["error"])
}
