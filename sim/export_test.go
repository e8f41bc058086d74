package sim

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvents() []Event {
	t0 := time.Date(2023, 10, 1, 8, 0, 0, 0, time.UTC)
	return []Event{
		{CaseID: "BATCH_00002", Activity: "Shipment", Timestamp: t0.Add(3 * time.Hour), Resource: "Worker B", BatchSize: 1200},
		{CaseID: "BATCH_00001", Activity: "Raw Material Arrival", Timestamp: t0, Resource: "Worker A", BatchSize: 900},
		{CaseID: "BATCH_00002", Activity: "Raw Material Arrival", Timestamp: t0.Add(time.Hour), Resource: "Machine X", BatchSize: 1200},
		{CaseID: "BATCH_00001", Activity: "Shipment", Timestamp: t0.Add(2 * time.Hour), Resource: "Worker A", BatchSize: 900},
	}
}

func TestSortEvents_CaseThenTimestamp(t *testing.T) {
	events := sampleEvents()
	SortEvents(events)

	var order []string
	for _, e := range events {
		order = append(order, e.CaseID+"/"+e.Activity)
	}
	assert.Equal(t, []string{
		"BATCH_00001/Raw Material Arrival",
		"BATCH_00001/Shipment",
		"BATCH_00002/Raw Material Arrival",
		"BATCH_00002/Shipment",
	}, order)
}

func TestSortEvents_StableForEqualTimestamps(t *testing.T) {
	t0 := time.Date(2023, 10, 1, 8, 0, 0, 0, time.UTC)
	events := []Event{
		{CaseID: "BATCH_00001", Activity: "first", Timestamp: t0},
		{CaseID: "BATCH_00001", Activity: "second", Timestamp: t0},
	}
	SortEvents(events)
	assert.Equal(t, "first", events[0].Activity)
	assert.Equal(t, "second", events[1].Activity)
}

func TestWriteCSV_TableShape(t *testing.T) {
	events := sampleEvents()
	SortEvents(events)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, events))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "case_id,activity,timestamp,resource,batch_size", lines[0])
	assert.Equal(t, "BATCH_00001,Raw Material Arrival,2023-10-01 08:00:00.000000,Worker A,900", lines[1])
}

func TestWriteCSVFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	require.NoError(t, WriteCSVFile(path, sampleEvents()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "case_id,activity,timestamp,resource,batch_size")
	assert.Contains(t, string(data), "Shipment")
}
