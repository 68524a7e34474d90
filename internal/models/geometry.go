package models

import "fmt"

// boundingScale is the normalization range shared by every spatial annotation
// the model returns, regardless of source resolution.
const boundingScale = 1000.0

// BoundingBox is [ymin, xmin, ymax, xmax] normalized to 0-1000.
type BoundingBox [4]float64

func (b BoundingBox) Valid() bool {
	for _, v := range b {
		if v < 0 || v > boundingScale {
			return false
		}
	}
	return b[0] <= b[2] && b[1] <= b[3]
}

// Rect maps the box onto a rendered surface of the given pixel dimensions.
// Consumers divide by 1000 and scale by the display size.
func (b BoundingBox) Rect(displayWidth, displayHeight float64) (x, y, w, h float64) {
	x = b[1] / boundingScale * displayWidth
	y = b[0] / boundingScale * displayHeight
	w = (b[3] - b[1]) / boundingScale * displayWidth
	h = (b[2] - b[0]) / boundingScale * displayHeight
	return
}

// MeasurementPoint is an image-space point normalized to 0-1000.
type MeasurementPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p MeasurementPoint) Valid() bool {
	return p.X >= 0 && p.X <= boundingScale && p.Y >= 0 && p.Y <= boundingScale
}

// Measurement label sentinels. A measurement starts pending and is replaced
// by the resolved estimate or the error marker.
const (
	MeasurementPending = "Measuring..."
	MeasurementError   = "Error"
)

// ManualMeasurement is a user-drawn ruler line awaiting an async distance
// estimate.
type ManualMeasurement struct {
	ID            string           `json:"id"`
	Start         MeasurementPoint `json:"start"`
	End           MeasurementPoint `json:"end"`
	DistanceLabel string           `json:"distance_label"`
}

func (m ManualMeasurement) Validate() error {
	if !m.Start.Valid() || !m.End.Valid() {
		return fmt.Errorf("measurement points must be normalized to [0,%v]", boundingScale)
	}
	return nil
}
