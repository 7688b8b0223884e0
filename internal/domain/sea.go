// Package domain holds the sea record model and the analytical queries over it.
package domain

import (
	"fmt"
	"math"
)

// Dataset limits.
const (
	MaxSeas        = 10      // Maximum number of records a SeaStore holds.
	MinDepthM      = 0.0     // Minimum accepted depth in meters.
	MaxDepthM      = 12000.0 // Maximum accepted depth in meters.
	MinSalinityPpt = 0.0     // Minimum accepted salinity in per-mille.
	MaxSalinityPpt = 45.0    // Maximum accepted salinity in per-mille.
)

// NotFound is the index returned by queries over an empty store.
const NotFound = -1

// Sea is a single sea record.
type Sea struct {
	Name        string  `json:"name"`
	DepthM      float64 `json:"depth_m"`      // Depth in meters.
	SalinityPpt float64 `json:"salinity_ppt"` // Salinity in per-mille.
}

// DepthInRange reports whether depth lies within [MinDepthM, MaxDepthM].
func DepthInRange(depth float64) bool {
	return !math.IsNaN(depth) && depth >= MinDepthM && depth <= MaxDepthM
}

// SalinityInRange reports whether salinity lies within [MinSalinityPpt, MaxSalinityPpt].
func SalinityInRange(salinity float64) bool {
	return !math.IsNaN(salinity) && salinity >= MinSalinityPpt && salinity <= MaxSalinityPpt
}

// Validate checks the record against the advisory ranges.
// Loaders do not call it; it guards interactively entered records.
func (s Sea) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("sea name is required")
	}
	if !DepthInRange(s.DepthM) {
		return fmt.Errorf("depth must be between %.1f and %.1f meters, got %v", MinDepthM, MaxDepthM, s.DepthM)
	}
	if !SalinityInRange(s.SalinityPpt) {
		return fmt.Errorf("salinity must be between %.1f and %.1f ppt, got %v", MinSalinityPpt, MaxSalinityPpt, s.SalinityPpt)
	}
	return nil
}

// SeaStore is an ordered collection of sea records capped at MaxSeas.
// It is not safe for concurrent use.
type SeaStore struct {
	seas []Sea
}

// NewSeaStore creates a store holding the given records.
// Records past MaxSeas are dropped.
func NewSeaStore(seas ...Sea) *SeaStore {
	s := &SeaStore{seas: make([]Sea, 0, MaxSeas)}
	for _, sea := range seas {
		if !s.Append(sea) {
			break
		}
	}
	return s
}

// Len returns the number of records.
func (s *SeaStore) Len() int {
	return len(s.seas)
}

// Full reports whether the store has reached MaxSeas.
func (s *SeaStore) Full() bool {
	return len(s.seas) >= MaxSeas
}

// At returns the record at index i.
func (s *SeaStore) At(i int) Sea {
	return s.seas[i]
}

// Append adds a record at the end. It returns false, leaving the store
// unchanged, when the store is full.
func (s *SeaStore) Append(sea Sea) bool {
	if s.Full() {
		return false
	}
	s.seas = append(s.seas, sea)
	return true
}

// Reset removes all records.
func (s *SeaStore) Reset() {
	s.seas = s.seas[:0]
}

// Seas returns the backing slice. Sorting it reorders the store.
func (s *SeaStore) Seas() []Sea {
	return s.seas
}

// All returns a copy of the records in store order.
func (s *SeaStore) All() []Sea {
	out := make([]Sea, len(s.seas))
	copy(out, s.seas)
	return out
}
