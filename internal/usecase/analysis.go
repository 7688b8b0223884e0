package usecase

import (
	"errors"
	"fmt"
	"sync"

	"go.ngs.io/seas-api/internal/adapter/store"
	"go.ngs.io/seas-api/internal/domain"
)

var (
	// ErrStoreFull is returned when adding to a store that holds MaxSeas records.
	ErrStoreFull = errors.New("sea store is full")
	// ErrEmptyStore is returned by extremum queries on an empty store.
	ErrEmptyStore = errors.New("sea store is empty")
)

// SeaResult is a sea together with its position in the store.
type SeaResult struct {
	Index int        `json:"index"`
	Sea   domain.Sea `json:"sea"`
}

// LoadResponse reports the outcome of a dataset load.
type LoadResponse struct {
	Source string `json:"source"`
	Loaded int    `json:"loaded"`
	Total  int    `json:"total"`
}

// SalinityMatchResponse contains the seas near a target salinity.
type SalinityMatchResponse struct {
	TargetPpt    float64     `json:"target_ppt"`
	TolerancePpt float64     `json:"tolerance_ppt"`
	Matches      []SeaResult `json:"matches"`
}

// SummaryResponse contains the analytical summary of the store.
type SummaryResponse struct {
	Count         int        `json:"count"`
	AverageDepthM float64    `json:"average_depth_m"`
	Deepest       *SeaResult `json:"deepest,omitempty"`
	LeastSalty    *SeaResult `json:"least_salty,omitempty"`
}

// SeaAnalysisUseCase orchestrates loading and querying a sea dataset.
type SeaAnalysisUseCase struct {
	mu     sync.RWMutex
	seas   *domain.SeaStore
	loader store.SeaLoader
}

// NewSeaAnalysisUseCase creates a use case over an empty store.
// loader may be nil, in which case Load picks one from the source path.
func NewSeaAnalysisUseCase(loader store.SeaLoader) *SeaAnalysisUseCase {
	return &SeaAnalysisUseCase{
		seas:   domain.NewSeaStore(),
		loader: loader,
	}
}

// Load replaces the dataset with the records in source.
// An unreadable source leaves the current dataset in place.
func (uc *SeaAnalysisUseCase) Load(source string) LoadResponse {
	loader := uc.loader
	if loader == nil {
		loader = store.ForPath(source, nil)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	loaded := loader.Load(source, uc.seas)
	return LoadResponse{Source: source, Loaded: loaded, Total: uc.seas.Len()}
}

// Replace runs fill against the store under the write lock.
// It is used by loaders that read from something other than a path.
func (uc *SeaAnalysisUseCase) Replace(source string, fill func(*domain.SeaStore) int) LoadResponse {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	loaded := fill(uc.seas)
	return LoadResponse{Source: source, Loaded: loaded, Total: uc.seas.Len()}
}

// Seas returns a copy of the dataset in store order.
func (uc *SeaAnalysisUseCase) Seas() []domain.Sea {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	return uc.seas.All()
}

// Add appends a validated sea to the dataset.
func (uc *SeaAnalysisUseCase) Add(sea domain.Sea) (SeaResult, error) {
	if err := sea.Validate(); err != nil {
		return SeaResult{}, fmt.Errorf("invalid sea: %w", err)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if !uc.seas.Append(sea) {
		return SeaResult{}, ErrStoreFull
	}
	return SeaResult{Index: uc.seas.Len() - 1, Sea: sea}, nil
}

// Deepest returns the deepest sea.
func (uc *SeaAnalysisUseCase) Deepest() (SeaResult, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	return uc.resultAt(domain.FindDeepestSeaIndex(uc.seas.Seas()))
}

// LeastSalty returns the sea with the lowest salinity.
func (uc *SeaAnalysisUseCase) LeastSalty() (SeaResult, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	return uc.resultAt(domain.FindLeastSaltySeaIndex(uc.seas.Seas()))
}

// AverageDepth returns the mean depth, 0 for an empty dataset.
func (uc *SeaAnalysisUseCase) AverageDepth() float64 {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	return domain.CalculateAverageDepth(uc.seas.Seas())
}

// SortByDepth reorders the dataset deepest first and returns the new order.
func (uc *SeaAnalysisUseCase) SortByDepth() []domain.Sea {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	domain.SortSeasByDepth(uc.seas.Seas())
	return uc.seas.All()
}

// BySalinity returns the seas within tolerance of target.
func (uc *SeaAnalysisUseCase) BySalinity(target, tolerance float64) SalinityMatchResponse {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	indices := domain.FindSeasBySalinity(uc.seas.Seas(), target, tolerance)
	matches := make([]SeaResult, len(indices))
	for i, idx := range indices {
		matches[i] = SeaResult{Index: idx, Sea: uc.seas.At(idx)}
	}

	return SalinityMatchResponse{
		TargetPpt:    target,
		TolerancePpt: tolerance,
		Matches:      matches,
	}
}

// Summary returns count, extrema and average depth of the dataset.
func (uc *SeaAnalysisUseCase) Summary() SummaryResponse {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	return Summarize(uc.seas.Seas())
}

// Summarize builds a SummaryResponse for seas.
func Summarize(seas []domain.Sea) SummaryResponse {
	s := domain.Summarize(seas)
	resp := SummaryResponse{
		Count:         s.Count,
		AverageDepthM: s.AverageDepthM,
	}
	if s.DeepestIndex != domain.NotFound {
		resp.Deepest = &SeaResult{Index: s.DeepestIndex, Sea: seas[s.DeepestIndex]}
	}
	if s.LeastSaltyIndex != domain.NotFound {
		resp.LeastSalty = &SeaResult{Index: s.LeastSaltyIndex, Sea: seas[s.LeastSaltyIndex]}
	}
	return resp
}

func (uc *SeaAnalysisUseCase) resultAt(idx int) (SeaResult, error) {
	if idx == domain.NotFound {
		return SeaResult{}, ErrEmptyStore
	}
	return SeaResult{Index: idx, Sea: uc.seas.At(idx)}, nil
}
