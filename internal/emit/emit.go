// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package emit serializes a ScoreRecord sequence into the supported
// output formats. Every emitter reads the same immutable record slice
// and emitters never share mutable state, so All runs them concurrently.
package emit

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/pdiddy/scoresheet-engine/pkg/types"
)

// Func serializes the record sequence for one format. Implementations
// must not mutate records.
type Func func(records []types.ScoreRecord) ([]byte, error)

// emitters registers the record-based formats. Metadata is not here: it
// is derived from the PDF text, not from ScoreRecords, and is handled by
// the pipeline directly.
var emitters = map[types.Format]Func{
	types.FormatCSV:     CSV,
	types.FormatJSON:    JSON,
	types.FormatPivot:   Pivot,
	types.FormatTremper: Tremper,
}

// For returns the emitter for a record-based format.
func For(f types.Format) (Func, bool) {
	fn, ok := emitters[f]
	return fn, ok
}

// Output is one emitted payload.
type Output struct {
	Format types.Format
	Data   []byte
}

// Failure records a per-format emission error. One format failing never
// aborts the others.
type Failure struct {
	Format types.Format
	Err    error
}

// All emits every requested record-based format concurrently, one
// goroutine per format writing to its own slot. Outputs preserve the
// requested order.
func All(records []types.ScoreRecord, formats []types.Format) ([]Output, []Failure) {
	type slot struct {
		data []byte
		err  error
	}
	slots := make([]slot, len(formats))

	var wg sync.WaitGroup
	for i, f := range formats {
		fn, ok := For(f)
		if !ok {
			slots[i].err = fmt.Errorf("no emitter for format %q", f)
			continue
		}
		wg.Add(1)
		go func(i int, fn Func) {
			defer wg.Done()
			slots[i].data, slots[i].err = fn(records)
		}(i, fn)
	}
	wg.Wait()

	var outputs []Output
	var failures []Failure
	for i, f := range formats {
		if slots[i].err != nil {
			failures = append(failures, Failure{Format: f, Err: slots[i].err})
			continue
		}
		outputs = append(outputs, Output{Format: f, Data: slots[i].data})
	}
	return outputs, failures
}

// formatScore renders a score value the way the source sheets print
// them: no exponent, no trailing zeros.
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
