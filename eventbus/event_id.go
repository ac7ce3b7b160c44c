package eventbus

import (
	"bytes"
	"encoding/binary"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidEventID indicates that a string could not be parsed into an EventID.
var ErrInvalidEventID = errors.New("invalid event id")

// EventID is a 16-byte event identifier that is globally unique and strictly
// increasing in generation order.
//
// Layout:
//
//	bytes  0..7   random (uniqueness)
//	bytes  8..9   days since 2000-01-01 UTC, big-endian (ordering)
//	bytes 10..13  millisecond of day, big-endian (ordering)
//	bytes 14..15  sub-millisecond counter, big-endian (ordering)
//
// The random prefix preserves uniqueness across processes while the ordered
// suffix preserves insertion-order comparability: Compare orders by the
// suffix first, so identifiers generated later always compare greater, even
// within the same millisecond.
type EventID [16]byte

// epoch is the zero point of the day counter.
var epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// idSequencer guards the monotonic suffix. The suffix packs day, millisecond
// of day, and sub-millisecond counter into one uint64 (day<<48 | ms<<16 |
// counter), so "strictly after the last one" is a single integer bump even
// when the wall clock stands still or steps backwards.
type idSequencer struct {
	mu         sync.Mutex
	lastSuffix uint64
}

var sequencer idSequencer

func (s *idSequencer) nextSuffix(now time.Time) uint64 {
	now = now.UTC()

	day := uint64(now.Sub(epoch) / (24 * time.Hour))
	msOfDay := uint64(now.Sub(now.Truncate(24*time.Hour)) / time.Millisecond)

	candidate := day<<48 | msOfDay<<16

	s.mu.Lock()
	defer s.mu.Unlock()

	if candidate <= s.lastSuffix {
		candidate = s.lastSuffix + 1
	}

	s.lastSuffix = candidate

	return candidate
}

// NewEventID generates a time-ordered event identifier. Identifiers from one
// process are strictly increasing in generation order under Compare.
func NewEventID() EventID {
	return buildEventID(time.Now())
}

func buildEventID(now time.Time) EventID {
	var id EventID

	random := uuid.New()
	copy(id[:8], random[:8])

	binary.BigEndian.PutUint64(id[8:], sequencer.nextSuffix(now))

	return id
}

// EventIDFromString parses the canonical UUID string form of an EventID.
func EventIDFromString(value string) (EventID, error) {
	parsed, err := uuid.Parse(value)
	if err != nil {
		return EventID{}, errors.Join(ErrInvalidEventID, err)
	}

	return EventID(parsed), nil
}

// String returns the identifier in canonical UUID string form.
func (id EventID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether the identifier is the zero value.
func (id EventID) IsZero() bool {
	return id == EventID{}
}

// Compare returns -1, 0, or +1 ordering identifiers by generation time.
// The ordered suffix is compared first; the random prefix only breaks ties
// between identifiers generated by different processes in the same
// sub-millisecond slot.
func (id EventID) Compare(other EventID) int {
	if c := bytes.Compare(id[8:], other[8:]); c != 0 {
		return c
	}

	return bytes.Compare(id[:8], other[:8])
}

// Less reports whether id was generated before other.
func (id EventID) Less(other EventID) bool {
	return id.Compare(other) < 0
}
