package model

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/interact/internal/core/gesture"
	"github.com/zeusync/interact/pkg/geom"
)

// Snapshot is the published, host-facing view of a State.
type Snapshot struct {
	ID string `json:"id"`

	Offset          geom.Vector2 `json:"offset"`
	CommittedOffset geom.Vector2 `json:"committed_offset"`
	Size            geom.Size    `json:"size"`
	Magnification   float64      `json:"magnification"`
	Angle           float64      `json:"angle"`
	CommittedAngle  float64      `json:"committed_angle"`
	IsSelected      bool         `json:"is_selected"`

	Corners map[string]geom.Vector2 `json:"corners"`

	Dragging   bool `json:"dragging"`
	Rotating   bool `json:"rotating"`
	Resizing   bool `json:"resizing"`
	Throwing   bool `json:"throwing"`
	Spinning   bool `json:"spinning"`
	Magnifying bool `json:"magnifying"`
	Twisting   bool `json:"twisting"`
}

// Snapshot copies the state into its published form.
func (s *State) Snapshot(id string) Snapshot {
	corners := make(map[string]geom.Vector2, len(Corners))
	for _, c := range Corners {
		corners[c.String()] = s.Corners[c]
	}
	return Snapshot{
		ID:              id,
		Offset:          s.CurrentOffset(),
		CommittedOffset: s.Offset,
		Size:            s.Size,
		Magnification:   s.Magnification,
		Angle:           s.CurrentAngle(),
		CommittedAngle:  s.Angle,
		IsSelected:      s.IsSelected,
		Corners:         corners,
		Dragging:        gesture.IsTranslating(s.Drag),
		Rotating:        gesture.IsRotating(s.Spin),
		Resizing:        s.Resizing(),
		Throwing:        s.Throwing,
		Spinning:        s.Spinning,
		Magnifying:      s.Magnifying,
		Twisting:        s.Twisting,
	}
}

// Fingerprint hashes every published field of the state. Two states with the
// same fingerprint render identically, so hosts can skip redundant updates.
func (s *State) Fingerprint() uint64 {
	h := xxhash.New()
	var buf [8]byte
	put := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = h.Write(buf[:])
	}
	putVec := func(v geom.Vector2) {
		put(v.X)
		put(v.Y)
	}

	putVec(s.Offset)
	putVec(gesture.TranslationOf(s.Drag))
	put(s.Size.Width)
	put(s.Size.Height)
	put(s.Magnification)
	put(s.Angle)
	put(gesture.DeltaThetaOf(s.Spin))
	put(s.Twist)
	for _, c := range s.Corners {
		putVec(c)
	}

	var flags byte
	for i, b := range []bool{
		s.IsSelected,
		gesture.IsTranslating(s.Drag),
		gesture.IsRotating(s.Spin),
		s.Throwing,
		s.Spinning,
		s.Magnifying,
		s.Twisting,
	} {
		if b {
			flags |= 1 << i
		}
	}
	_, _ = h.Write([]byte{flags})
	return h.Sum64()
}
