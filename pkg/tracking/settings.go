package tracking

import (
	"fmt"
	"math"
)

// Settings holds the immutable configuration shared by every Tracker a
// Supervisor creates (spec §3). Once passed to NewSettings it is never
// mutated; each Tracker receives its own copy at construction.
type Settings struct {
	// FrameWidth and FrameHeight are the dimensions, in pixels, of every
	// frame this Settings' trackers will be asked to process.
	FrameWidth  int `yaml:"frame_width" json:"frame_width"`
	FrameHeight int `yaml:"frame_height" json:"frame_height"`

	// WindowSize is the edge length, in pixels, of the square tracking
	// window (N in spec §3).
	WindowSize int `yaml:"window_size" json:"window_size"`

	// LearningRate (eta) is the exponential-moving-average coefficient
	// used by Tracker.Update, in (0, 1].
	LearningRate float32 `yaml:"learning_rate" json:"learning_rate"`

	// PSRThreshold (tau) is the minimum PSR a prediction must exceed
	// for its filter to be updated, and for a Supervisor to consider
	// the tracker healthy.
	PSRThreshold float32 `yaml:"psr_threshold" json:"psr_threshold"`

	// Regularization (epsilon) is added to H after A/B during training;
	// it is deliberately not re-added during Update (spec §4.5.4, §9).
	// Both Train and Update divide by epsilon in place of a B element
	// that is exactly zero.
	Regularization float32 `yaml:"regularization" json:"regularization"`

	// CorrectedPSR selects between the reference PSR exclusion-window
	// formula (false, the default, preserves the min-instead-of-max
	// bug documented in spec §9) and a corrected formula that actually
	// excludes the 11x11 neighborhood around the peak (true).
	CorrectedPSR bool `yaml:"corrected_psr" json:"corrected_psr"`
}

// NewSettings validates and returns a Settings value. Construction is
// the only point at which pre-condition violations are reported; a
// Settings value that passes NewSettings is safe to pass to
// NewSupervisor or NewTracker without further checks (spec §7).
func NewSettings(frameWidth, frameHeight, windowSize int, learningRate, psrThreshold, regularization float32) (Settings, error) {
	s := Settings{
		FrameWidth:     frameWidth,
		FrameHeight:    frameHeight,
		WindowSize:     windowSize,
		LearningRate:   learningRate,
		PSRThreshold:   psrThreshold,
		Regularization: regularization,
	}
	return s, s.Validate()
}

// Validate reports the first pre-condition violation found, or nil if
// s is usable to construct a Tracker (spec §7: "Pre-condition
// violation ... must be reported at tracker construction; fatal to
// that tracker.").
func (s Settings) Validate() error {
	switch {
	case s.WindowSize <= 0:
		return fmt.Errorf("tracking: window size must be positive, got %d", s.WindowSize)
	case s.WindowSize > s.FrameWidth:
		return fmt.Errorf("tracking: window size %d exceeds frame width %d", s.WindowSize, s.FrameWidth)
	case s.WindowSize > s.FrameHeight:
		return fmt.Errorf("tracking: window size %d exceeds frame height %d", s.WindowSize, s.FrameHeight)
	case s.LearningRate <= 0 || s.LearningRate > 1:
		return fmt.Errorf("tracking: learning rate must be in (0, 1], got %v", s.LearningRate)
	case s.PSRThreshold <= 0:
		return fmt.Errorf("tracking: psr threshold must be positive, got %v", s.PSRThreshold)
	case s.Regularization < 0:
		return fmt.Errorf("tracking: regularization must be >= 0, got %v", s.Regularization)
	case !finite32(s.LearningRate) || !finite32(s.PSRThreshold) || !finite32(s.Regularization):
		return fmt.Errorf("tracking: settings must be finite")
	}
	return nil
}

func finite32(f float32) bool {
	v := float64(f)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
