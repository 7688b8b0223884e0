// Package store defines how sea datasets are loaded into a SeaStore.
package store

import (
	"log/slog"
	"path/filepath"
	"strings"

	"go.ngs.io/seas-api/internal/adapter/store/nctable"
	"go.ngs.io/seas-api/internal/adapter/store/text"
	"go.ngs.io/seas-api/internal/domain"
)

// SeaLoader is the interface for loading sea records.
type SeaLoader interface {
	// Load replaces the contents of store with the records in source and
	// returns the number loaded. An unreadable source returns 0 and leaves
	// store untouched.
	Load(source string, store *domain.SeaStore) int
}

// ForPath picks a loader from the file extension: NetCDF for ".nc", text otherwise.
func ForPath(path string, logger *slog.Logger) SeaLoader {
	if strings.EqualFold(filepath.Ext(path), ".nc") {
		return nctable.NewLoader(logger)
	}
	return text.NewLoader(logger)
}
