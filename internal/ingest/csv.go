package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/datojulien/liftlog/internal/metrics"
	"github.com/datojulien/liftlog/internal/models"
)

// Column headers of the workout export schema. Matching is case-insensitive
// and whitespace-trimmed; column order is immaterial.
const (
	colDate       = "Date"
	colExercise   = "Exercise"
	colReps       = "Reps"
	colWeight     = "Weight(kg)"
	colDuration   = "Duration(s)"
	colDistance   = "Distance(m)"
	colIncline    = "Incline"
	colResistance = "Resistance"
	colWarmup     = "isWarmup"
	colNote       = "Note"
	colMultiplier = "multiplier"
)

// requiredColumns must be present in the header for the input to be
// readable as a workout export at all.
var requiredColumns = []string{colDate, colExercise, colReps, colWeight}

// Batch is the result of reading one workout export: the accepted,
// normalized records plus every rejected row with its reason.
type Batch struct {
	Records  []models.SetRecord
	Rejected []models.RejectedRow
}

// RejectedByReason tallies the rejected rows per reason.
func (b *Batch) RejectedByReason() map[models.RejectReason]int {
	if len(b.Rejected) == 0 {
		return nil
	}
	tally := make(map[models.RejectReason]int, len(models.ValidRejectReasons))
	for _, r := range b.Rejected {
		tally[r.Reason]++
	}
	return tally
}

// ReadAll decodes a CSV workout export and normalizes every row.
// Malformed rows are collected in Batch.Rejected and never abort the read;
// ReadAll only fails if the input cannot be parsed as tabular data with the
// required columns.
func ReadAll(r io.Reader) (*Batch, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are handled per row, not fatally

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("ingest: reading header: %w", err)
	}

	cols, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	batch := &Batch{}
	line := 1 // header was line 1
	for {
		fields, readErr := cr.Read()
		if readErr == io.EOF {
			break
		}
		line++
		if readErr != nil {
			// A row the CSV layer itself cannot decode (e.g. bare quote)
			// is a row-level rejection, same as a failed normalization.
			batch.Rejected = append(batch.Rejected, models.RejectedRow{
				Line:   line,
				Reason: models.RejectInvalidNumeric,
				Detail: readErr.Error(),
			})
			continue
		}

		raw := cols.rawRow(fields, line)
		rec, normErr := Normalize(raw)
		if normErr != nil {
			batch.Rejected = append(batch.Rejected, models.RejectedRow{
				Line:   line,
				Reason: ReasonFor(normErr),
				Detail: normErr.Error(),
			})
			continue
		}
		batch.Records = append(batch.Records, rec)
	}

	metrics.RowsRead.Add(int64(len(batch.Records) + len(batch.Rejected)))
	metrics.RowsRejected.Add(int64(len(batch.Rejected)))

	return batch, nil
}

// columnMap maps schema columns to field indexes; -1 means absent.
type columnMap map[string]int

func mapHeader(header []string) (columnMap, error) {
	cols := make(columnMap, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, req := range requiredColumns {
		if _, ok := cols[strings.ToLower(req)]; !ok {
			return nil, fmt.Errorf("ingest: required column %q not found in header", req)
		}
	}
	return cols, nil
}

// field returns the named column's value in fields, or "" if the column is
// absent or the row is too short.
func (c columnMap) field(fields []string, name string) string {
	i, ok := c[strings.ToLower(name)]
	if !ok || i >= len(fields) {
		return ""
	}
	return fields[i]
}

func (c columnMap) rawRow(fields []string, line int) RawRow {
	return RawRow{
		Line:       line,
		Date:       c.field(fields, colDate),
		Exercise:   c.field(fields, colExercise),
		Reps:       c.field(fields, colReps),
		Weight:     c.field(fields, colWeight),
		Duration:   c.field(fields, colDuration),
		Distance:   c.field(fields, colDistance),
		Incline:    c.field(fields, colIncline),
		Resistance: c.field(fields, colResistance),
		Warmup:     c.field(fields, colWarmup),
		Note:       c.field(fields, colNote),
		Multiplier: c.field(fields, colMultiplier),
	}
}
