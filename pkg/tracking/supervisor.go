package tracking

import (
	b58 "github.com/mr-tron/base58/base58"

	. "github.com/itohio/mosse/pkg/logger"
	"github.com/itohio/mosse/pkg/tracking/internal/fft"
)

// record pairs a caller-supplied identifier with its single tracker and
// the number of consecutive frames it has failed to clear the PSR
// threshold (spec §3, "Tracker record").
type record struct {
	id      uint32
	counter int
	tracker *Tracker
}

// IDPrediction pairs a tracker identifier with the Prediction produced
// for it during one Supervisor.Track call.
type IDPrediction struct {
	ID uint32
	Prediction
}

// Supervisor manages a collection of single-object Trackers sharing one
// Settings value, running them against each frame and evicting
// trackers whose PSR has stayed at or below threshold for
// DesperationLevel consecutive frames (spec §4.7).
//
// A Supervisor is not safe for concurrent Track calls on the same
// instance (spec §5); callers serialize access at the boundary.
type Supervisor struct {
	settings         Settings
	desperationLevel int
	plans            *fft.Registry
	records          []record
}

// NewSupervisor creates a Supervisor for the given settings. A tracker
// is evicted the first time its consecutive-low-PSR counter reaches
// desperationLevel.
func NewSupervisor(settings Settings, desperationLevel int) (*Supervisor, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Supervisor{
		settings:         settings,
		desperationLevel: desperationLevel,
		plans:            fft.NewRegistry(),
	}, nil
}

// AddOrReplaceTarget constructs a new Tracker from the supervisor's
// shared settings, trains it on frame at (cx, cy), and either replaces
// an existing record sharing id (resetting its counter to 0) or
// appends a new one (spec §4.7: "add_or_replace").
func (s *Supervisor) AddOrReplaceTarget(id uint32, cx, cy int, frame Frame) error {
	plan, err := s.plans.Get(s.settings.WindowSize * s.settings.WindowSize)
	if err != nil {
		return err
	}
	t, err := NewTracker(s.settings, plan)
	if err != nil {
		return err
	}
	if err := t.Train(frame, cx, cy); err != nil {
		return err
	}

	for i := range s.records {
		if s.records[i].id == id {
			s.records[i].tracker = t
			s.records[i].counter = 0
			Log.Debug().Uint32("id", id).Str("id_b58", base58Uint32(id)).Msg("tracking: replaced target")
			return nil
		}
	}

	s.records = append(s.records, record{id: id, tracker: t})
	Log.Debug().Uint32("id", id).Str("id_b58", base58Uint32(id)).Msg("tracking: added target")
	return nil
}

// Track runs every tracked record's Predict against frame, updates
// filters that cleared the PSR threshold, increments or resets each
// record's low-PSR counter, prunes trackers that reached the
// desperation level, and returns one prediction per record that was
// tracked on entry, including records evicted by this call, in
// insertion order (spec §4.7, §5: ordering is never reordered).
func (s *Supervisor) Track(frame Frame) ([]IDPrediction, error) {
	preds := make([]IDPrediction, 0, len(s.records))

	for i := range s.records {
		rec := &s.records[i]
		pred, err := rec.tracker.Predict(frame)
		if err != nil {
			return nil, err
		}
		preds = append(preds, IDPrediction{ID: rec.id, Prediction: pred})

		if pred.PSR > float64(s.settings.PSRThreshold) {
			if err := rec.tracker.Update(frame); err != nil {
				return nil, err
			}
			rec.counter = 0
		} else {
			rec.counter++
		}
	}

	kept := s.records[:0]
	for _, rec := range s.records {
		if rec.counter < s.desperationLevel {
			kept = append(kept, rec)
		} else {
			Log.Info().Uint32("id", rec.id).Str("id_b58", base58Uint32(rec.id)).Int("counter", rec.counter).Msg("tracking: evicted target")
		}
	}
	s.records = kept

	return preds, nil
}

// Size returns the number of currently tracked targets.
func (s *Supervisor) Size() int {
	return len(s.records)
}

// DumpFilters produces, per tracked target in insertion order, the
// identifier and the diagnostic real/imaginary filter images
// (spec §4.7, §6).
func (s *Supervisor) DumpFilters() []FilterDump {
	dumps := make([]FilterDump, 0, len(s.records))
	for _, rec := range s.records {
		r, i := rec.tracker.DumpFilter()
		dumps = append(dumps, FilterDump{ID: rec.id, Real: r, Imag: i})
	}
	return dumps
}

// FilterDump is one tracker's diagnostic filter images, as returned by
// Supervisor.DumpFilters.
type FilterDump struct {
	ID        uint32
	Real, Imag []uint8
}

func base58Uint32(id uint32) string {
	b := []byte{byte(id >> 24), byte(id >> 16), byte(id >> 8), byte(id)}
	return b58.Encode(b)
}
