package journal

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVJournalHeaders(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	j, err := NewCSV(&buf)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)

	want := []string{"Trade ID", "Date/Time", "Ticker", "Direction", "Entry", "Exit", "Qty", "P&L", "Notes"}
	assert.Equal(t, want, rows[0])
}

func TestCSVJournalRecordTrade(t *testing.T) {
	t.Parallel()

	tr := mustTrade(t, "007", time.Date(2025, 10, 17, 14, 5, 0, 0, time.UTC), "NQ", Short, 18010.5, 18000, 2)
	tr.Notes = "faded the open, \"quick\" scalp"

	var buf bytes.Buffer
	j, err := NewCSV(&buf)
	require.NoError(t, err)
	require.NoError(t, j.RecordTrade(tr))
	require.NoError(t, j.Close())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{
		"#007",
		"10/17/2025 02:05 PM",
		"NQ",
		"Short",
		"18010.50",
		"18000.00",
		"2",
		"420.00",
		"faded the open, \"quick\" scalp",
	}, rows[1])
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	trades := []Trade{
		mustTrade(t, "002", baseTime.Add(time.Hour), "ES", Long, 5000, 4999.75, 1),
		mustTrade(t, "001", baseTime, "MES", Long, 5000, 5001, 3),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, trades))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// order is preserved
	assert.Equal(t, "#002", rows[1][0])
	assert.Equal(t, "-12.50", rows[1][7])
	assert.Equal(t, "#001", rows[2][0])
	assert.Equal(t, "15.00", rows[2][7])
	assert.Equal(t, "", rows[2][8])
}

func TestWriteCSVEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "Trade ID,Date/Time,Ticker,Direction,Entry,Exit,Qty,P&L,Notes\n", buf.String())
}
