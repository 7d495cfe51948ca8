package tracking

import (
	"fmt"

	. "github.com/itohio/mosse/pkg/logger"
	"github.com/itohio/mosse/pkg/tracking/internal/cbuf"
	"github.com/itohio/mosse/pkg/tracking/internal/fft"
	"github.com/itohio/mosse/pkg/tracking/internal/window"
)

// Frame is a single 8-bit luminance image, row-major, with declared
// width and height (spec §6: "an 8-bit luminance image supplied as a
// flat row-major buffer with declared width and height"). Decoding and
// color-to-luminance conversion are the caller's responsibility
// (spec §1).
type Frame struct {
	Width, Height int
	Pixels        []uint8
}

// Prediction is the outcome of one Tracker.Predict call: the new
// target center in frame coordinates and the confidence (PSR) of that
// prediction (spec §3, §6).
type Prediction struct {
	X, Y int
	PSR  float64
}

// Tracker is a single-object MOSSE correlation filter: it owns a
// filter and its running numerator/denominator, and exposes train,
// predict, update and diagnostic operations (spec §4.5).
type Tracker struct {
	settings Settings
	plan     *fft.Plan
	n        int

	template *cbuf.Buffer // G, frequency domain
	a        *cbuf.Buffer // running numerator
	b        *cbuf.Buffer // running denominator
	h        *cbuf.Buffer // current filter, H = A/B (+ eps during train)

	centerX, centerY int
	lastPSR          float64
	trained          bool
}

// NewTracker allocates a Tracker for the given settings, sharing the
// supplied FFT plan (see fft.Registry / design note "Shared FFT plan").
// The plan must have been built for settings.WindowSize*settings.WindowSize.
// NewTracker does not train the filter; callers must call Train before
// Predict (spec §4.5.1: "an initial target center of (0, 0) — which is
// a sentinel; callers must invoke train before predict").
func NewTracker(settings Settings, plan *fft.Plan) (*Tracker, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	n := settings.WindowSize
	if want := n * n; plan.Len() != want {
		return nil, fmt.Errorf("tracking: fft plan length %d does not match window_size^2 %d", plan.Len(), want)
	}

	raw := window.BuildTarget(n)
	g := toComplex(raw)
	gf := make([]complex128, len(g))
	plan.Forward(gf, g)

	return &Tracker{
		settings: settings,
		plan:     plan,
		n:        n,
		template: cbuf.NewFrom(n, gf),
		a:        cbuf.New(n),
		b:        cbuf.New(n),
		h:        cbuf.New(n),
	}, nil
}

// Train learns the initial filter from input centered at (cx, cy),
// using the 21 affine-perturbed variants of the cropped window
// (spec §4.5.2, §4.4).
func (t *Tracker) Train(frame Frame, cx, cy int) error {
	if err := t.checkFrame(frame); err != nil {
		return err
	}
	t.centerX, t.centerY = cx, cy

	win := t.crop(frame, cx, cy)
	variants := window.TrainingWindows(win, t.n)

	aSum := make([]complex128, t.n*t.n)
	bSum := make([]complex128, t.n*t.n)
	g := t.template.Data()

	for _, v := range variants {
		f := t.forward(v)
		for i, fi := range f {
			fStar := complex(real(fi), -imag(fi))
			aSum[i] += g[i] * fStar
			bSum[i] += fi * fStar
		}
	}

	count := complex(float64(len(variants)), 0)
	eps := complex(float64(t.settings.Regularization), 0)
	aData, bData, hData := t.a.Data(), t.b.Data(), t.h.Data()
	for i := range aData {
		a := aSum[i] / count
		b := bSum[i] / count
		aData[i] = a
		bData[i] = b
		hData[i] = safeDiv(a, b, eps) + eps
	}

	t.trained = true
	return nil
}

// Predict crops the window at the current target center, correlates it
// against the filter, locates the response peak and moves the target
// center there, and returns the new center with its PSR (spec §4.5.3).
func (t *Tracker) Predict(frame Frame) (Prediction, error) {
	if !t.trained {
		return Prediction{}, fmt.Errorf("tracking: predict called before train")
	}
	if err := t.checkFrame(frame); err != nil {
		return Prediction{}, err
	}

	win := t.crop(frame, t.centerX, t.centerY)
	f := t.forward(win)

	h := t.h.Data()
	r := make([]complex128, len(f))
	for i := range f {
		r[i] = f[i] * h[i]
	}
	resp := make([]complex128, len(r))
	t.plan.Inverse(resp, r)

	peakIdx := window.PeakIndex(resp)
	mx, my := window.IndexToCoords(t.n, peakIdx)
	half := t.n / 2
	dx := mx - half
	dy := my - half

	newX := clamp(t.centerX+dx, half, frame.Width-half)
	newY := clamp(t.centerY+dy, half, frame.Height-half)
	t.centerX, t.centerY = newX, newY

	psr := window.ComputePSR(resp, t.n, peakIdx, t.settings.CorrectedPSR)
	t.lastPSR = psr

	return Prediction{X: newX, Y: newY, PSR: psr}, nil
}

// Update performs the online filter refresh (spec §4.5.4). Callers
// (normally a Supervisor) should only call Update after a Predict
// whose PSR exceeded the settings' threshold.
func (t *Tracker) Update(frame Frame) error {
	if !t.trained {
		return fmt.Errorf("tracking: update called before train")
	}
	if err := t.checkFrame(frame); err != nil {
		return err
	}

	win := t.crop(frame, t.centerX, t.centerY)
	f := t.forward(win)
	g := t.template.Data()

	eta := complex(float64(t.settings.LearningRate), 0)
	oneMinusEta := complex(1, 0) - eta
	eps := complex(float64(t.settings.Regularization), 0)

	aData, bData, hData := t.a.Data(), t.b.Data(), t.h.Data()
	for i, fi := range f {
		fStar := complex(real(fi), -imag(fi))
		aData[i] = eta*(g[i]*fStar) + oneMinusEta*aData[i]
		bData[i] = eta*(fi*fStar) + oneMinusEta*bData[i]
		// §7.1: ε is not re-added here (train/update asymmetry is
		// preserved deliberately), but a zero denominator is still
		// guarded so H never silently receives NaN/Inf.
		hData[i] = safeDiv(aData[i], bData[i], eps)
	}
	return nil
}

// LastPSR returns the PSR computed by the most recent Predict call.
func (t *Tracker) LastPSR() float64 {
	return t.lastPSR
}

// Center returns the current target center in frame coordinates.
func (t *Tracker) Center() (x, y int) {
	return t.centerX, t.centerY
}

// DumpFilter returns two N x N 8-bit grayscale images derived from the
// inverse-FFT of the current filter H: the real component and the
// imaginary component, each converted by direct (lossy, unnormalized)
// truncation toward zero (spec §6).
func (t *Tracker) DumpFilter() (realImg, imagImg []uint8) {
	src := t.h.Data()
	buf := make([]complex128, len(src))
	copy(buf, src)
	spatial := make([]complex128, len(buf))
	t.plan.Inverse(spatial, buf)

	realImg = make([]uint8, len(spatial))
	imagImg = make([]uint8, len(spatial))
	for i, c := range spatial {
		realImg[i] = toByte(real(c))
		imagImg[i] = toByte(imag(c))
	}
	return realImg, imagImg
}

// DumpTarget returns the raw Gaussian target surface (before FFT), as
// an 8-bit image, scaled by 255 and cast directly with no
// normalization (supplemented from the original implementation's
// dump_target debugging helper, spec §9.1).
func (t *Tracker) DumpTarget() []uint8 {
	raw := window.BuildTarget(t.n)
	out := make([]uint8, len(raw))
	for i, v := range raw {
		out[i] = toByte(float64(v) * 255)
	}
	return out
}

func (t *Tracker) checkFrame(frame Frame) error {
	if frame.Width != t.settings.FrameWidth || frame.Height != t.settings.FrameHeight {
		return fmt.Errorf("tracking: frame %dx%d does not match settings %dx%d", frame.Width, frame.Height, t.settings.FrameWidth, t.settings.FrameHeight)
	}
	if len(frame.Pixels) != frame.Width*frame.Height {
		return fmt.Errorf("tracking: frame declares %dx%d but carries %d pixels", frame.Width, frame.Height, len(frame.Pixels))
	}
	return nil
}

// crop extracts an N x N window centered on (cx, cy), clamping the
// crop origin so the window lies entirely inside the frame. The
// reference implementation uses saturating subtraction on
// (cx-N/2, cy-N/2) followed by a minimum with (W-N, H-N); this is
// reproduced precisely so edge-case centers produce deterministic
// windows (spec §4.5.2).
func (t *Tracker) crop(frame Frame, cx, cy int) []uint8 {
	half := t.n / 2
	ox := clampOrigin(cx, half, frame.Width-t.n)
	oy := clampOrigin(cy, half, frame.Height-t.n)

	out := make([]uint8, t.n*t.n)
	for y := 0; y < t.n; y++ {
		src := (oy+y)*frame.Width + ox
		copy(out[y*t.n:(y+1)*t.n], frame.Pixels[src:src+t.n])
	}
	return out
}

func (t *Tracker) forward(win []uint8) []complex128 {
	pre := window.Preprocess(win, t.n)
	c := toComplex(pre)
	out := make([]complex128, len(c))
	t.plan.Forward(out, c)
	return out
}

func clampOrigin(c, half, max int) int {
	o := c - half
	if o < 0 {
		o = 0 // saturating_sub semantics: never below zero
	}
	if o > max {
		o = max
	}
	return o
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func toComplex(src []float32) []complex128 {
	out := make([]complex128, len(src))
	for i, v := range src {
		out[i] = complex(float64(v), 0)
	}
	return out
}

// safeDiv divides a by b, substituting eps for b when b is exactly
// zero so the filter never silently carries Inf/NaN forward into PSR
// (spec §7, §7.1 EXPANDED): "Degenerate numeric state ... do not
// panic ... must avoid propagating NaN into PSR silently."
func safeDiv(a, b, eps complex128) complex128 {
	if b == 0 {
		b = eps
	}
	if b == 0 {
		Log.Warn().Msg("tracking: filter denominator and regularization both zero; returning zero response")
		return 0
	}
	return a / b
}

func toByte(f float64) uint8 {
	return uint8(int64(f))
}
