package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"jobgate/pkg/models"
)

func sampleRecords() []models.JobRecord {
	min := 90000.0
	max := 120000.0
	return []models.JobRecord{
		{
			Title:      "Go Developer",
			Company:    "Acme",
			Source:     models.SourceRemoteOK,
			JobURL:     "https://example.com/1",
			Location:   models.Location{City: "Austin", State: "TX", Country: "USA"},
			IsRemote:   true,
			JobType:    "fulltime",
			DatePosted: "2024-05-01",
			Salary: &models.Salary{
				MinAmount: &min,
				MaxAmount: &max,
				Interval:  "yearly",
				Currency:  "USD",
			},
			Skills: []string{"go", "sql"},
		},
		{
			Title:  "Analyst",
			Source: models.SourceLinkedIn,
			Skills: []string{},
		},
	}
}

func TestCSVHeaderAlwaysPresent(t *testing.T) {
	data, err := CSV(nil)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, columns, rows[0])
}

func TestCSVFlattensRecords(t *testing.T) {
	data, err := CSV(sampleRecords())
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	first := rows[1]
	assert.Equal(t, "Go Developer", first[0])
	assert.Equal(t, "remoteok", first[2])
	assert.Equal(t, "Austin", first[4])
	assert.Equal(t, "true", first[7])
	assert.Equal(t, "90000", first[11])
	assert.Equal(t, "120000", first[12])
	assert.Equal(t, "go, sql", first[17])

	// sparse record leaves salary columns empty
	second := rows[2]
	assert.Equal(t, "Analyst", second[0])
	assert.Equal(t, "", second[11])
	assert.Equal(t, "", second[12])
}

func TestExcelRoundTrip(t *testing.T) {
	data, err := Excel(sampleRecords())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, "title", rows[0][0])
	assert.Equal(t, "Go Developer", rows[1][0])
	assert.Equal(t, "remoteok", rows[1][2])
}

func TestExcelEmptyResultKeepsHeader(t *testing.T) {
	data, err := Excel(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(f.GetActiveSheetIndex()))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, columns, rows[0])
}
