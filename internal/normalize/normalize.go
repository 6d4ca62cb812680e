// Package normalize holds the shared coercion helpers that turn loosely
// typed upstream payloads (JSON maps from the batch engine and the direct
// job-board APIs) into canonical JobRecord values.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobgate/pkg/models"
	"jobgate/pkg/utils"
)

// String coerces any JSON value into a trimmed string. Nulls, NaN and the
// string sentinels "nan"/"none"/"null" become empty strings, because the
// batch engine serializes missing cells that way.
func String(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		s := strings.TrimSpace(t)
		switch strings.ToLower(s) {
		case "nan", "none", "null":
			return ""
		}
		return s
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// Float coerces a JSON value into a float pointer. NaN, Inf, nulls and
// unparseable strings come back nil.
func Float(v any) *float64 {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		f := t
		return &f
	case int:
		f := float64(t)
		return &f
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return &f
		}
		return nil
	default:
		return nil
	}
}

// Bool coerces a JSON value into a plain bool, defaulting to false.
func Bool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes":
			return true
		}
	}
	return false
}

// StringList coerces a JSON array or comma-separated string into a slice of
// trimmed, non-empty strings. Empty input is nil.
func StringList(v any) []string {
	var parts []string
	switch t := v.(type) {
	case nil:
		return nil
	case []string:
		parts = t
	case []any:
		for _, el := range t {
			parts = append(parts, String(el))
		}
	case string:
		parts = strings.Split(t, ",")
	default:
		return nil
	}

	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// timestampLayouts are tried in order when a source sends a textual date.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses an upstream posting time. Accepts Unix epoch
// seconds (numeric or numeric string) and the common ISO layouts. Returns
// the zero time when nothing matches.
func ParseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case float64:
		if t <= 0 || math.IsNaN(t) || math.IsInf(t, 0) {
			return time.Time{}
		}
		return time.Unix(int64(t), 0).UTC()
	case int64:
		if t <= 0 {
			return time.Time{}
		}
		return time.Unix(t, 0).UTC()
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}
		}
		if epoch, err := strconv.ParseInt(s, 10, 64); err == nil && epoch > 0 {
			return time.Unix(epoch, 0).UTC()
		}
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts.UTC()
			}
		}
	}
	return time.Time{}
}

// ISODate renders a time as the YYYY-MM-DD date string used in responses.
// The zero time renders as "".
func ISODate(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format("2006-01-02")
}

// ISODatePrefix truncates an upstream date string to its date component
// without parsing it, for sources that already send ISO-ish timestamps.
func ISODatePrefix(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

// HTMLToText strips markup from an HTML fragment, joining the text nodes
// with spaces. Used to produce markdown-format descriptions from sources
// that only publish HTML.
func HTMLToText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	var parts []string
	doc.Find("body").Contents().Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	if len(parts) == 0 {
		return strings.TrimSpace(doc.Text())
	}
	return strings.Join(parts, " ")
}

// Description renders an upstream HTML description in the requested format:
// html passes through untouched, markdown strips the markup down to text.
func Description(htmlFragment, format string) string {
	htmlFragment = strings.TrimSpace(htmlFragment)
	if htmlFragment == "" {
		return ""
	}
	if format == models.FormatHTML {
		return htmlFragment
	}
	return HTMLToText(htmlFragment)
}

// SplitLocation breaks a free-text "City, State, Country" location string
// into its structured parts. One segment fills City, two fill City and
// State, three or more fill all three (extra middle segments join State).
func SplitLocation(location string) models.Location {
	var segments []string
	for _, seg := range strings.Split(location, ",") {
		if seg = strings.TrimSpace(seg); seg != "" {
			segments = append(segments, seg)
		}
	}

	switch len(segments) {
	case 0:
		return models.Location{}
	case 1:
		return models.Location{City: segments[0]}
	case 2:
		return models.Location{City: segments[0], State: segments[1]}
	default:
		return models.Location{
			City:    segments[0],
			State:   strings.Join(segments[1:len(segments)-1], ", "),
			Country: segments[len(segments)-1],
		}
	}
}

// FromLibraryRow converts one row from the batch engine's tabular result
// into the canonical record. The engine column names follow the upstream
// scraping library's dataframe schema.
func FromLibraryRow(row map[string]any) models.JobRecord {
	record := models.JobRecord{
		Title:   String(row["title"]),
		Company: String(row["company"]),
		Source:  models.SourceID(strings.ToLower(String(row["site"]))),
		JobURL:  utils.FirstNonEmpty(String(row["job_url_direct"]), String(row["job_url"])),
		Location: models.Location{
			City:    String(row["city"]),
			State:   String(row["state"]),
			Country: String(row["country"]),
		},
		IsRemote:        Bool(row["is_remote"]),
		JobType:         String(row["job_type"]),
		JobLevel:        String(row["job_level"]),
		DatePosted:      ISODatePrefix(String(row["date_posted"])),
		Description:     String(row["description"]),
		ContactEmails:   StringList(row["emails"]),
		Skills:          StringList(row["skills"]),
		CompanyURL:      String(row["company_url"]),
		CompanyIndustry: String(row["company_industry"]),
	}

	if record.Location.City == "" && record.Location.Country == "" {
		record.Location = SplitLocation(String(row["location"]))
	}
	if record.Skills == nil {
		record.Skills = []string{}
	}

	minAmount := Float(row["min_amount"])
	maxAmount := Float(row["max_amount"])
	interval := String(row["interval"])
	currency := String(row["currency"])
	if minAmount != nil || maxAmount != nil || interval != "" || currency != "" {
		record.Salary = &models.Salary{
			MinAmount: minAmount,
			MaxAmount: maxAmount,
			Interval:  interval,
			Currency:  currency,
		}
	}

	return record
}
