// Package text provides loading of sea records from ';'-delimited text files.
package text

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"go.ngs.io/seas-api/internal/domain"
)

// FieldSeparator separates name, depth and salinity on a line.
const FieldSeparator = ";"

// Loader reads sea records from text files.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a text loader. A nil logger falls back to slog.Default.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load implements store.SeaLoader.
func (l *Loader) Load(source string, store *domain.SeaStore) int {
	//nolint:gosec // G304: Path is supplied by the operator.
	file, err := os.Open(source)
	if err != nil {
		l.logger.Debug("sea file not opened", "path", source, "error", err)
		return 0
	}
	defer func() { _ = file.Close() }()

	return l.read(file, source, store)
}

// ReadSeasFromFile replaces the contents of store with the records in filename.
// If the file cannot be opened the store is left untouched and 0 is returned.
// Malformed lines are skipped; reading stops once the store is full.
func ReadSeasFromFile(filename string, store *domain.SeaStore) int {
	return NewLoader(nil).Load(filename, store)
}

// ReadSeas replaces the contents of store with the records read from r.
func ReadSeas(r io.Reader, store *domain.SeaStore) int {
	return NewLoader(nil).read(r, "reader", store)
}

func (l *Loader) read(r io.Reader, source string, store *domain.SeaStore) int {
	store.Reset()

	reader := bufio.NewReader(r)
	lineNo := 0
	added := 0

	for !store.Full() {
		// Lines of any length are read whole.
		line, err := reader.ReadString('\n')
		if line != "" {
			lineNo++

			sea, ok := ParseLine(strings.TrimSuffix(line, "\n"))
			if ok {
				store.Append(sea)
				added++
			} else {
				l.logger.Debug("skipping sea line", "source", source, "line", lineNo)
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			l.logger.Warn("sea scan stopped early", "source", source, "line", lineNo, "error", err)
			break
		}
	}

	return added
}

// ParseLine parses a "name;depth;salinity" line.
// It reports false for blank lines, lines without three fields and lines
// whose numeric fields do not parse to finite numbers.
func ParseLine(line string) (domain.Sea, bool) {
	line = strings.TrimRight(line, "\r")
	if strings.TrimSpace(line) == "" {
		return domain.Sea{}, false
	}

	fields := strings.SplitN(line, FieldSeparator, 3)
	if len(fields) != 3 {
		return domain.Sea{}, false
	}

	depth, ok := parseFinite(fields[1])
	if !ok {
		return domain.Sea{}, false
	}

	salinity, ok := parseFinite(fields[2])
	if !ok {
		return domain.Sea{}, false
	}

	return domain.Sea{
		Name:        fields[0],
		DepthM:      depth,
		SalinityPpt: salinity,
	}, true
}

// parseFinite parses a numeric field, rejecting NaN and infinities.
func parseFinite(field string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
