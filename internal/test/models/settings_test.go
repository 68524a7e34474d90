package models_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"lumina-backend/internal/models"
)

func TestGenerationSettings_Validate(t *testing.T) {
	settings := models.DefaultSettings()
	assert.NoError(t, settings.Validate())

	settings.Prompt = strings.Repeat("a", 501)
	assert.Error(t, settings.Validate())

	// The limit counts characters, not bytes.
	settings.Prompt = strings.Repeat("é", 500)
	assert.NoError(t, settings.Validate())
	settings.Prompt = strings.Repeat("é", 501)
	assert.Error(t, settings.Validate())

	settings = models.DefaultSettings()
	settings.Creativity = 101
	assert.Error(t, settings.Validate())

	settings = models.DefaultSettings()
	settings.RoomType = "Spaceship"
	assert.Error(t, settings.Validate())

	settings = models.DefaultSettings()
	negative := -2.0
	settings.Dimensions = &models.Dimensions{Length: &negative}
	assert.Error(t, settings.Validate())
}

func TestGenerationSettings_SnapshotIsDeep(t *testing.T) {
	length := 4.5
	settings := models.DefaultSettings()
	settings.Dimensions = &models.Dimensions{Length: &length}

	snapshot := settings.Snapshot()

	// Mutating the original must not leak into the snapshot.
	*settings.Dimensions.Length = 9.9
	assert.Equal(t, 4.5, *snapshot.Dimensions.Length)
}

func TestDimensions_Any(t *testing.T) {
	var dims *models.Dimensions
	assert.False(t, dims.Any())
	assert.False(t, (&models.Dimensions{}).Any())

	height := 2.8
	assert.True(t, (&models.Dimensions{Height: &height}).Any())
}
