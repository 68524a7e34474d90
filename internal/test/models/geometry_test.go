package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lumina-backend/internal/models"
)

func TestBoundingBox_Rect(t *testing.T) {
	// [ymin, xmin, ymax, xmax] on a 1000x500 surface.
	box := models.BoundingBox{100, 200, 300, 400}

	x, y, w, h := box.Rect(1000, 500)

	assert.Equal(t, 200.0, x)
	assert.Equal(t, 50.0, y)
	assert.Equal(t, 200.0, w)
	assert.Equal(t, 100.0, h)
}

func TestBoundingBox_Valid(t *testing.T) {
	assert.True(t, models.BoundingBox{0, 0, 1000, 1000}.Valid())
	assert.True(t, models.BoundingBox{100, 200, 300, 400}.Valid())

	// Out of range.
	assert.False(t, models.BoundingBox{-1, 0, 100, 100}.Valid())
	assert.False(t, models.BoundingBox{0, 0, 1001, 100}.Valid())

	// Inverted extents.
	assert.False(t, models.BoundingBox{300, 200, 100, 400}.Valid())
	assert.False(t, models.BoundingBox{100, 400, 300, 200}.Valid())
}

func TestMeasurementPoint_Valid(t *testing.T) {
	assert.True(t, models.MeasurementPoint{X: 0, Y: 1000}.Valid())
	assert.False(t, models.MeasurementPoint{X: -1, Y: 500}.Valid())
	assert.False(t, models.MeasurementPoint{X: 500, Y: 1001}.Valid())
}

func TestManualMeasurement_Validate(t *testing.T) {
	m := models.ManualMeasurement{
		Start: models.MeasurementPoint{X: 100, Y: 100},
		End:   models.MeasurementPoint{X: 900, Y: 900},
	}
	assert.NoError(t, m.Validate())

	m.End.X = 1500
	assert.Error(t, m.Validate())
}
