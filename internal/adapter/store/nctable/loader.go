// Package nctable provides loading of sea records from NetCDF sea tables.
package nctable

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/fhs/go-netcdf/netcdf"

	"go.ngs.io/seas-api/internal/domain"
)

// Variable and dimension names of a sea table.
const (
	SeaDim      = "sea"
	NameLenDim  = "name_strlen"
	NameVar     = "name"
	DepthVar    = "depth"
	SalinityVar = "salinity"
)

// Loader reads sea records from NetCDF files.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a NetCDF loader. A nil logger falls back to slog.Default.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// ReadSeasFromNetCDF replaces the contents of store with the records in path.
// If the file cannot be opened the store is left untouched and 0 is returned.
func ReadSeasFromNetCDF(path string, store *domain.SeaStore) int {
	return NewLoader(nil).Load(path, store)
}

// Load implements store.SeaLoader.
//
// Records whose depth or salinity is NaN or equal to the variable's fill
// value are skipped. Loading stops once the store is full.
func (l *Loader) Load(source string, store *domain.SeaStore) int {
	nc, err := netcdf.OpenFile(source, netcdf.NOWRITE)
	if err != nil {
		l.logger.Debug("sea NetCDF file not opened", "path", source, "error", err)
		return 0
	}
	defer func() { _ = nc.Close() }()

	store.Reset()

	table, err := readTable(nc)
	if err != nil {
		l.logger.Warn("invalid sea NetCDF table", "path", source, "error", err)
		return 0
	}

	added := 0
	for i := 0; i < table.len() && !store.Full(); i++ {
		sea, ok := table.record(i)
		if !ok {
			l.logger.Debug("skipping sea record", "path", source, "index", i)
			continue
		}
		store.Append(sea)
		added++
	}

	return added
}

// seaTable holds the raw columns of a sea table.
type seaTable struct {
	names        []string
	depths       []float64
	salinities   []float64
	depthFill    float64
	hasDepthFill bool
	salFill      float64
	hasSalFill   bool
}

func (t *seaTable) len() int {
	return len(t.depths)
}

func (t *seaTable) record(i int) (domain.Sea, bool) {
	depth, sal := t.depths[i], t.salinities[i]
	if math.IsNaN(depth) || math.IsNaN(sal) {
		return domain.Sea{}, false
	}
	if t.hasDepthFill && depth == t.depthFill {
		return domain.Sea{}, false
	}
	if t.hasSalFill && sal == t.salFill {
		return domain.Sea{}, false
	}
	return domain.Sea{Name: t.names[i], DepthM: depth, SalinityPpt: sal}, true
}

func readTable(nc netcdf.Dataset) (*seaTable, error) {
	depthVar, err := nc.Var(DepthVar)
	if err != nil {
		return nil, fmt.Errorf("depth variable not found: %w", err)
	}
	salVar, err := nc.Var(SalinityVar)
	if err != nil {
		return nil, fmt.Errorf("salinity variable not found: %w", err)
	}
	nameVar, err := nc.Var(NameVar)
	if err != nil {
		return nil, fmt.Errorf("name variable not found: %w", err)
	}

	depths, err := readFloat64Var(depthVar)
	if err != nil {
		return nil, fmt.Errorf("failed to read depth: %w", err)
	}
	salinities, err := readFloat64Var(salVar)
	if err != nil {
		return nil, fmt.Errorf("failed to read salinity: %w", err)
	}
	if len(depths) != len(salinities) {
		return nil, fmt.Errorf("depth and salinity lengths differ: %d vs %d", len(depths), len(salinities))
	}

	names, err := readNames(nameVar)
	if err != nil {
		return nil, fmt.Errorf("failed to read names: %w", err)
	}
	if len(names) != len(depths) {
		return nil, fmt.Errorf("name and depth lengths differ: %d vs %d", len(names), len(depths))
	}

	table := &seaTable{
		names:      names,
		depths:     depths,
		salinities: salinities,
	}
	table.depthFill, table.hasDepthFill = getFillValue(depthVar)
	table.salFill, table.hasSalFill = getFillValue(salVar)

	return table, nil
}

// readNames reads a 2D BYTE variable of NUL-padded names.
func readNames(v netcdf.Var) ([]string, error) {
	dims, err := v.Dims()
	if err != nil {
		return nil, fmt.Errorf("failed to get dimensions: %w", err)
	}
	if len(dims) != 2 {
		return nil, fmt.Errorf("expected 2D name variable, got %dD", len(dims))
	}

	nRows, err := dims[0].Len()
	if err != nil {
		return nil, err
	}
	nCols, err := dims[1].Len()
	if err != nil {
		return nil, err
	}

	if t, err := v.Type(); err != nil {
		return nil, fmt.Errorf("failed to get var type: %w", err)
	} else if t != netcdf.BYTE {
		return nil, fmt.Errorf("unsupported name var type: %v", t)
	}

	raw := make([]int8, nRows*nCols)
	if err := v.ReadInt8s(raw); err != nil {
		return nil, err
	}

	names := make([]string, nRows)
	buf := make([]byte, nCols)
	for i := range names {
		for j := range buf {
			buf[j] = byte(raw[uint64(i)*nCols+uint64(j)])
		}
		names[i] = strings.TrimRight(string(buf), "\x00")
	}
	return names, nil
}

// getFillValue returns the _FillValue or missing_value attribute if present as float64.
func getFillValue(v netcdf.Var) (float64, bool) {
	for _, name := range []string{"_FillValue", "missing_value"} {
		a := v.Attr(name)
		if n, err := a.Len(); err != nil || n == 0 {
			continue
		}
		buf64 := make([]float64, 1)
		if err := a.ReadFloat64s(buf64); err == nil {
			return buf64[0], true
		}
		buf32 := make([]float32, 1)
		if err := a.ReadFloat32s(buf32); err == nil {
			return float64(buf32[0]), true
		}
	}
	return 0, false
}

// readFloat64Var reads a 1D DOUBLE or FLOAT variable as float64.
func readFloat64Var(v netcdf.Var) ([]float64, error) {
	dims, err := v.Dims()
	if err != nil {
		return nil, fmt.Errorf("failed to get dimensions: %w", err)
	}
	if len(dims) != 1 {
		return nil, fmt.Errorf("expected 1D variable, got %dD", len(dims))
	}

	length, err := dims[0].Len()
	if err != nil {
		return nil, err
	}

	t, err := v.Type()
	if err != nil {
		return nil, fmt.Errorf("failed to get var type: %w", err)
	}

	switch t {
	case netcdf.DOUBLE:
		data := make([]float64, length)
		if err := v.ReadFloat64s(data); err != nil {
			return nil, err
		}
		return data, nil
	case netcdf.FLOAT:
		tmp := make([]float32, length)
		if err := v.ReadFloat32s(tmp); err != nil {
			return nil, err
		}
		out := make([]float64, length)
		for i, val := range tmp {
			out[i] = float64(val)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported var type: %v", t)
	}
}
