// Package tracking implements a real-time MOSSE (Minimum Output Sum of
// Squared Error) correlation-filter tracker: a single-object Tracker
// that learns a frequency-domain filter from one labeled frame and
// adapts it online, and a Supervisor that manages a collection of
// Trackers keyed by caller-supplied identifier, evicting targets whose
// confidence (PSR) stays below threshold for too many consecutive
// frames.
//
// The package is synchronous and single-threaded: no operation
// suspends, retries, or owns background state. Image decoding,
// luminance conversion, overlay drawing, and any streaming transport
// are the caller's responsibility; this package consumes already
// decoded 8-bit luminance frames and produces predictions.
package tracking
