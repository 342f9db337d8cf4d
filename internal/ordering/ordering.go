// Package ordering maintains the manual display order of active plants.
//
// A sequence is a slice of active plants in display order. After every
// operation in this package the OrderIndex of each plant equals its
// position in the returned slice, so indices are always exactly 0..N-1.
package ordering

import (
	"errors"
	"fmt"
	"sort"

	"github.com/alexanderramin/kvitko/internal/domain"
)

var (
	ErrIndexOutOfRange = errors.New("order index out of range")
	ErrNotInSequence   = errors.New("plant is not in the active sequence")
	ErrRetired         = errors.New("retired plants cannot be ordered")
)

// Normalize builds a sequence from plants as loaded from storage. Retired
// plants are dropped, the rest are ordered by stored index, then creation
// time, then id, and reindexed densely.
func Normalize(plants []*domain.Plant) []*domain.Plant {
	seq := make([]*domain.Plant, 0, len(plants))
	for _, p := range plants {
		if p != nil && !p.Retired {
			seq = append(seq, p)
		}
	}
	sort.SliceStable(seq, func(i, j int) bool {
		a, b := seq[i], seq[j]
		if a.OrderIndex != b.OrderIndex {
			return a.OrderIndex < b.OrderIndex
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	reindex(seq)
	return seq
}

// Append adds p at the end of seq with OrderIndex = len(seq).
func Append(seq []*domain.Plant, p *domain.Plant) ([]*domain.Plant, error) {
	if p.Retired {
		return seq, ErrRetired
	}
	p.OrderIndex = len(seq)
	return append(seq, p), nil
}

// Reorder moves the plant at from to position to. The returned slice is a
// new sequence; seq itself is left in its original order. Indices outside
// [0, len(seq)) are rejected before anything is touched.
func Reorder(seq []*domain.Plant, from, to int) ([]*domain.Plant, error) {
	n := len(seq)
	if from < 0 || from >= n {
		return seq, fmt.Errorf("%w: from=%d, size=%d", ErrIndexOutOfRange, from, n)
	}
	if to < 0 || to >= n {
		return seq, fmt.Errorf("%w: to=%d, size=%d", ErrIndexOutOfRange, to, n)
	}
	if from == to {
		return seq, nil
	}

	moved := seq[from]
	out := make([]*domain.Plant, 0, n)
	out = append(out, seq[:from]...)
	out = append(out, seq[from+1:]...)
	out = append(out[:to], append([]*domain.Plant{moved}, out[to:]...)...)
	reindex(out)
	return out, nil
}

// Remove drops the plant with the given id and closes the gap it leaves.
func Remove(seq []*domain.Plant, id string) ([]*domain.Plant, error) {
	pos := IndexOf(seq, id)
	if pos < 0 {
		return seq, fmt.Errorf("%w: %s", ErrNotInSequence, id)
	}
	out := make([]*domain.Plant, 0, len(seq)-1)
	out = append(out, seq[:pos]...)
	out = append(out, seq[pos+1:]...)
	reindex(out)
	return out, nil
}

// IndexOf returns the position of the plant with id in seq, or -1.
func IndexOf(seq []*domain.Plant, id string) int {
	for i, p := range seq {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Validate checks that seq holds no retired plants and that every
// OrderIndex equals its position.
func Validate(seq []*domain.Plant) error {
	seen := make(map[string]bool, len(seq))
	for i, p := range seq {
		if p.Retired {
			return fmt.Errorf("%w: %s", ErrRetired, p.ID)
		}
		if seen[p.ID] {
			return fmt.Errorf("plant %s appears twice", p.ID)
		}
		seen[p.ID] = true
		if p.OrderIndex != i {
			return fmt.Errorf("plant %s at position %d has order index %d", p.ID, i, p.OrderIndex)
		}
	}
	return nil
}

// Snapshot records the current index of every plant in seq.
func Snapshot(seq []*domain.Plant) map[string]int {
	m := make(map[string]int, len(seq))
	for _, p := range seq {
		m[p.ID] = p.OrderIndex
	}
	return m
}

// Changed returns the plants in seq whose index differs from before.
// Plants absent from before are always included.
func Changed(before map[string]int, seq []*domain.Plant) []*domain.Plant {
	var out []*domain.Plant
	for _, p := range seq {
		if idx, ok := before[p.ID]; !ok || idx != p.OrderIndex {
			out = append(out, p)
		}
	}
	return out
}

func reindex(seq []*domain.Plant) {
	for i, p := range seq {
		p.OrderIndex = i
	}
}
