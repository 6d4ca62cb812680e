package normalize

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobgate/pkg/models"
)

func TestString(t *testing.T) {
	assert.Equal(t, "", String(nil))
	assert.Equal(t, "", String("NaN"))
	assert.Equal(t, "", String("none"))
	assert.Equal(t, "", String("null"))
	assert.Equal(t, "", String(math.NaN()))
	assert.Equal(t, "hello", String("  hello  "))
	assert.Equal(t, "42", String(float64(42)))
}

func TestFloat(t *testing.T) {
	assert.Nil(t, Float(nil))
	assert.Nil(t, Float(math.NaN()))
	assert.Nil(t, Float(math.Inf(1)))
	assert.Nil(t, Float("abc"))
	assert.Nil(t, Float(""))

	f := Float("85000.5")
	require.NotNil(t, f)
	assert.Equal(t, 85000.5, *f)
}

func TestParseTimestamp(t *testing.T) {
	assert.True(t, ParseTimestamp(nil).IsZero())
	assert.True(t, ParseTimestamp("not a date").IsZero())
	assert.True(t, ParseTimestamp(float64(0)).IsZero())

	epoch := ParseTimestamp(float64(1700000000))
	assert.Equal(t, int64(1700000000), epoch.Unix())

	iso := ParseTimestamp("2024-05-01T12:30:00Z")
	assert.Equal(t, 2024, iso.Year())

	dateOnly := ParseTimestamp("2024-05-01")
	assert.Equal(t, time.May, dateOnly.Month())
}

func TestISODate(t *testing.T) {
	assert.Equal(t, "", ISODate(time.Time{}))
	assert.Equal(t, "2024-05-01", ISODate(time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC)))
}

func TestISODatePrefix(t *testing.T) {
	assert.Equal(t, "2024-05-01", ISODatePrefix("2024-05-01T12:30:00+00:00"))
	assert.Equal(t, "2024-05-01", ISODatePrefix("2024-05-01"))
	assert.Equal(t, "", ISODatePrefix("  "))
}

func TestHTMLToText(t *testing.T) {
	got := HTMLToText("<p>We are <b>hiring</b>.</p><p>Apply now</p>")
	assert.Contains(t, got, "hiring")
	assert.Contains(t, got, "Apply now")
	assert.NotContains(t, got, "<p>")
}

func TestDescription(t *testing.T) {
	html := "<p>Senior role</p>"
	assert.Equal(t, html, Description(html, models.FormatHTML))
	assert.Equal(t, "Senior role", Description(html, models.FormatMarkdown))
	assert.Equal(t, "", Description("  ", models.FormatMarkdown))
}

func TestSplitLocation(t *testing.T) {
	assert.Equal(t, models.Location{}, SplitLocation(""))
	assert.Equal(t, models.Location{City: "Berlin"}, SplitLocation("Berlin"))
	assert.Equal(t, models.Location{City: "Austin", State: "TX"}, SplitLocation("Austin, TX"))
	assert.Equal(t,
		models.Location{City: "New York", State: "NY", Country: "USA"},
		SplitLocation("New York, NY, USA"))
}

func TestFromLibraryRow(t *testing.T) {
	row := map[string]any{
		"title":       "Backend Engineer",
		"company":     "Acme",
		"site":        "LinkedIn",
		"job_url":     "https://example.com/job/1",
		"location":    "Austin, TX, USA",
		"is_remote":   true,
		"job_type":    "fulltime",
		"date_posted": "2024-05-01T00:00:00",
		"min_amount":  float64(90000),
		"max_amount":  float64(120000),
		"interval":    "yearly",
		"currency":    "USD",
		"emails":      []any{"jobs@acme.example"},
	}

	record := FromLibraryRow(row)

	assert.Equal(t, "Backend Engineer", record.Title)
	assert.Equal(t, models.SourceLinkedIn, record.Source)
	assert.Equal(t, "Austin", record.Location.City)
	assert.Equal(t, "USA", record.Location.Country)
	assert.Equal(t, "2024-05-01", record.DatePosted)
	assert.True(t, record.IsRemote)
	require.NotNil(t, record.Salary)
	assert.Equal(t, 90000.0, *record.Salary.MinAmount)
	assert.Equal(t, []string{"jobs@acme.example"}, record.ContactEmails)
	assert.NotNil(t, record.Skills)
}

func TestFromLibraryRowSparse(t *testing.T) {
	record := FromLibraryRow(map[string]any{
		"title":      "Analyst",
		"site":       "indeed",
		"min_amount": math.NaN(),
		"max_amount": nil,
	})

	assert.Nil(t, record.Salary)
	assert.Equal(t, models.Location{}, record.Location)
	assert.Equal(t, []string{}, record.Skills)
}

func TestFromLibraryRowPrefersDirectURL(t *testing.T) {
	record := FromLibraryRow(map[string]any{
		"job_url":        "https://board.example/1",
		"job_url_direct": "https://company.example/careers/1",
	})
	assert.Equal(t, "https://company.example/careers/1", record.JobURL)
}
