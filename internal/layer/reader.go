// Package layer reads one depth layer's transcript table from disk and
// reports the outcome as a typed result, so callers can distinguish a
// missing file from a bad schema from a mid-read failure without inspecting
// error text.
package layer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"genepack/pkg/domain"
)

// Status classifies the outcome of reading a single layer.
type Status string

const (
	// StatusOK means the table parsed fully and Records carries its rows.
	StatusOK Status = "ok"
	// StatusMissing means the expected source file does not exist.
	StatusMissing Status = "missing"
	// StatusBadSchema means required columns are absent; MissingColumns
	// names them.
	StatusBadSchema Status = "bad_schema"
	// StatusFailed means an unexpected parse or IO failure occurred; Err
	// carries the cause. The layer contributes no rows.
	StatusFailed Status = "failed"
)

// requiredColumns are the minimal schema of a layer table. Extra columns are
// ignored.
var requiredColumns = []string{"gene", "x", "y"}

// Result is the outcome of reading one layer.
type Result struct {
	Layer          int
	Status         Status
	MissingColumns []string
	Records        []domain.LayerRecord
	Err            error
}

// Source locates and reads layer tables. PathTemplate is an fmt template
// with one %d verb for the layer index, e.g. "./raw/transcripts_z_%d.csv".
type Source struct {
	PathTemplate string
}

// Path returns the source file path for a layer index.
func (s Source) Path(layer int) string {
	return fmt.Sprintf(s.PathTemplate, layer)
}

// Read parses the layer's CSV table. Rows are streamed from the file, but
// records are only surfaced once the whole table has parsed cleanly; a
// failure mid-file yields StatusFailed with no records, so a broken layer
// can never contribute a partial row set.
func (s Source) Read(layer int) Result {
	path := s.Path(layer)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{Layer: layer, Status: StatusMissing}
		}
		return Result{Layer: layer, Status: StatusFailed, Err: fmt.Errorf("open %s: %w", path, err)}
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows surface as coercion errors below

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Result{Layer: layer, Status: StatusBadSchema, MissingColumns: requiredColumns}
		}
		return Result{Layer: layer, Status: StatusFailed, Err: fmt.Errorf("read header of %s: %w", path, err)}
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return Result{Layer: layer, Status: StatusBadSchema, MissingColumns: missing}
	}

	geneIdx, xIdx, yIdx := idx["gene"], idx["x"], idx["y"]
	var records []domain.LayerRecord
	for line := 2; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Result{Layer: layer, Status: StatusFailed, Err: fmt.Errorf("read %s line %d: %w", path, line, err)}
		}
		if len(row) <= geneIdx || len(row) <= xIdx || len(row) <= yIdx {
			return Result{Layer: layer, Status: StatusFailed, Err: fmt.Errorf("read %s line %d: row has %d fields", path, line, len(row))}
		}
		x, err := strconv.ParseFloat(row[xIdx], 64)
		if err != nil {
			return Result{Layer: layer, Status: StatusFailed, Err: fmt.Errorf("read %s line %d: parse x: %w", path, line, err)}
		}
		y, err := strconv.ParseFloat(row[yIdx], 64)
		if err != nil {
			return Result{Layer: layer, Status: StatusFailed, Err: fmt.Errorf("read %s line %d: parse y: %w", path, line, err)}
		}
		records = append(records, domain.LayerRecord{Gene: row[geneIdx], X: x, Y: y})
	}
	return Result{Layer: layer, Status: StatusOK, Records: records}
}
