// sim/export.go
//
// Collaborator surface for downstream process-mining tools: the documented
// (case_id, timestamp) sort and a flat CSV rendering of the event table.

package sim

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
)

// csvTimeLayout matches the timestamp format the downstream tooling parses.
const csvTimeLayout = "2006-01-02 15:04:05.000000"

// csvHeader is the column contract of the exported event table.
var csvHeader = []string{"case_id", "activity", "timestamp", "resource", "batch_size"}

// SortEvents orders the log by (case_id, timestamp), the contract downstream
// analysis expects. Generation order is chronological within each case but
// not across cases; this sort restores a globally analyzable table. The sort
// is stable so simultaneous events keep their emission order.
func SortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].CaseID != events[j].CaseID {
			return events[i].CaseID < events[j].CaseID
		}
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
}

// WriteCSV renders the event table with a header row.
func WriteCSV(w io.Writer, events []Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for i, e := range events {
		record := []string{
			e.CaseID,
			e.Activity,
			e.Timestamp.Format(csvTimeLayout),
			e.Resource,
			strconv.Itoa(e.BatchSize),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the event table to path, creating or truncating it.
func WriteCSVFile(path string, events []Event) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteCSV(f, events); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
