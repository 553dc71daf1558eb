// Package workload builds synthetic note event sequences for exercising and
// timing stores.
package workload

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/jsphweid/notestore/model"
)

type Shape string

const (
	Random     Shape = "random"
	Ascending  Shape = "ascending"
	Descending Shape = "descending"
)

var ErrUnknownShape = errors.New("unknown workload shape")

func ParseShape(s string) (Shape, error) {
	switch sh := Shape(s); sh {
	case Random, Ascending, Descending:
		return sh, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownShape, s)
}

const (
	fixedLength   = 10
	maxRandLength = 100
	noteNumber    = 60
	velocity      = 100
)

// Generate returns n events with ids "0".."n-1". Ascending and Descending
// place event i at [i, i+10] and emit them in increasing or decreasing order.
// Random draws the start from [0, n) and the length from [0, 100); rng may
// be nil for the ordered shapes.
func Generate(shape Shape, n int, rng *rand.Rand) []model.NoteEvent {
	res := make([]model.NoteEvent, 0, n)
	for i := 0; i < n; i++ {
		idx := i
		if shape == Descending {
			idx = n - 1 - i
		}
		e := model.NoteEvent{
			ID:         strconv.Itoa(idx),
			StartTicks: uint64(idx),
			EndTicks:   uint64(idx) + fixedLength,
			NoteNumber: noteNumber,
			Velocity:   velocity,
		}
		if shape == Random {
			e.StartTicks = uint64(rng.Intn(n))
			e.EndTicks = e.StartTicks + uint64(rng.Intn(maxRandLength))
		}
		res = append(res, e)
	}
	return res
}

// Patches returns one full patch per event that shifts it by up to 50 ticks
// and changes its pitch and velocity.
func Patches(events []model.NoteEvent, rng *rand.Rand) []model.NoteEventUpdate {
	res := make([]model.NoteEventUpdate, 0, len(events))
	for _, e := range events {
		shift := uint64(rng.Intn(50))
		res = append(res, model.NoteEventUpdate{
			ID:         e.ID,
			StartTicks: model.Ticks(e.StartTicks + shift),
			EndTicks:   model.Ticks(e.EndTicks + shift),
			NoteNumber: model.Byte(uint8(rng.Intn(128))),
			Velocity:   model.Byte(uint8(rng.Intn(128))),
		})
	}
	return res
}
