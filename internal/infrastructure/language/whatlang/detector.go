package whatlang

import (
	"errors"
	"strings"

	"github.com/abadojack/whatlanggo"
)

var ErrUndetected = errors.New("language could not be detected")

// Detector returns ISO 639-1 codes.
type Detector struct {
	minConfidence float64
}

func New(minConfidence float64) *Detector {
	return &Detector{minConfidence: minConfidence}
}

func (d *Detector) Detect(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrUndetected
	}
	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6391()
	if code == "" || info.Confidence < d.minConfidence {
		return "", ErrUndetected
	}
	return code, nil
}
