// Package params converts the loosely-typed mapping arriving over HTTP
// (strings from the query string, arbitrary JSON values from a POST body)
// into a validated models.SearchRequest. All validation happens here,
// before any upstream source is contacted.
package params

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"jobgate/pkg/models"
	"jobgate/pkg/utils"
)

var validate = validator.New()

var truthyValues = map[string]bool{
	"1":    true,
	"true": true,
	"yes":  true,
}

// ParseBool coerces a raw value into a tri-state boolean. Absent (nil) and
// empty-string inputs stay unset; truthy strings are "1"/"true"/"yes"
// case-insensitively; any other parseable value is false.
func ParseBool(v any) *bool {
	switch t := v.(type) {
	case nil:
		return nil
	case bool:
		b := t
		return &b
	case int:
		b := t != 0
		return &b
	case float64:
		b := t != 0
		return &b
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		b := truthyValues[strings.ToLower(s)]
		return &b
	default:
		return nil
	}
}

// ParseInt coerces a raw value into an int, falling back to def for absent,
// empty, or malformed input. Lenient on purpose.
func ParseInt(v any, def int) int {
	switch t := v.(type) {
	case int:
		return t
	case float64:
		return int(t)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return def
		}
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		return def
	default:
		return def
	}
}

// ParseStringList coerces a native list or a comma-separated string into a
// slice of trimmed, non-empty strings. An empty result becomes nil, not an
// empty slice.
func ParseStringList(v any) []string {
	var parts []string

	switch t := v.(type) {
	case nil:
		return nil
	case []string:
		parts = t
	case []any:
		for _, el := range t {
			parts = append(parts, fmt.Sprint(el))
		}
	case string:
		parts = strings.Split(t, ",")
	default:
		return nil
	}

	var result []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

// ParseIntList coerces a native list or comma-separated string into ints.
// Elements that fail to cast are silently dropped; an empty result is nil.
func ParseIntList(v any) []int {
	var result []int

	appendParsed := func(s string) {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			result = append(result, n)
		}
	}

	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		for _, el := range t {
			switch n := el.(type) {
			case int:
				result = append(result, n)
			case float64:
				result = append(result, int(n))
			case string:
				appendParsed(n)
			}
		}
	case string:
		for _, p := range strings.Split(t, ",") {
			appendParsed(p)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

// Normalize builds a validated SearchRequest from the raw request mapping.
// Validation order: unknown sources, then job_type, then description_format,
// then output_format.
func Normalize(raw map[string]any) (*models.SearchRequest, error) {
	req := &models.SearchRequest{
		SearchTerm:       stringValue(raw["search_term"]),
		GoogleSearchTerm: stringValue(raw["google_search_term"]),
		Location:         stringValue(raw["location"]),
		Country:          stringValue(raw["country_indeed"]),
		UserAgent:        stringValue(raw["user_agent"]),
		Distance:         ParseInt(raw["distance"], 50),
		ResultsWanted:    ParseInt(raw["results_wanted"], 15),
		HoursOld:         ParseInt(raw["hours_old"], 0),
		Offset:           ParseInt(raw["offset"], 0),
		IsRemote:         ParseBool(raw["is_remote"]),
		EasyApply:        ParseBool(raw["easy_apply"]),
		CompanyIDs:       ParseIntList(raw["linkedin_company_ids"]),
		Proxies:          ParseStringList(raw["proxies"]),
	}

	if b := ParseBool(raw["linkedin_fetch_description"]); b != nil {
		req.FetchFullDescription = *b
	}
	if b := ParseBool(raw["enforce_annual_salary"]); b != nil {
		req.EnforceAnnualSalary = *b
	}

	sources, err := normalizeSources(raw["site_name"])
	if err != nil {
		return nil, err
	}
	req.Sources = sources

	jobType := strings.ToLower(stringValue(raw["job_type"]))
	if jobType != "" && !models.IsValidJobType(jobType) {
		return nil, utils.NewValidationError(fmt.Sprintf(
			"invalid job_type '%s'; valid: %s", jobType, strings.Join(models.ValidJobTypes(), ", ")))
	}
	req.JobType = jobType

	descFormat := strings.ToLower(stringValue(raw["description_format"]))
	if descFormat == "" {
		descFormat = models.FormatMarkdown
	}
	if !models.IsValidDescriptionFormat(descFormat) {
		return nil, utils.NewValidationError(fmt.Sprintf(
			"invalid description_format '%s'; valid: %s, %s", descFormat, models.FormatMarkdown, models.FormatHTML))
	}
	req.DescriptionFormat = descFormat

	outputFormat := strings.ToLower(stringValue(raw["output_format"]))
	if outputFormat == "" {
		outputFormat = models.OutputJSON
	}
	if !models.IsValidOutputFormat(outputFormat) {
		return nil, utils.NewValidationError(fmt.Sprintf(
			"invalid output_format '%s'; valid: %s, %s, %s", outputFormat, models.OutputJSON, models.OutputCSV, models.OutputExcel))
	}
	req.OutputFormat = outputFormat

	if err := validate.Struct(req); err != nil {
		return nil, utils.NewValidationError(err.Error())
	}

	return req, nil
}

// normalizeSources resolves the requested source list: default to the full
// known set when absent, lowercase and de-duplicate preserving order, and
// reject unknown names enumerating both the offenders and the valid set.
func normalizeSources(v any) ([]models.SourceID, error) {
	names := ParseStringList(v)
	if len(names) == 0 {
		return models.KnownSources(), nil
	}

	var sources []models.SourceID
	var invalid []string
	seen := make(map[models.SourceID]bool)

	for _, name := range names {
		id := models.SourceID(strings.ToLower(name))
		if !models.IsKnownSource(id) {
			invalid = append(invalid, name)
			continue
		}
		if !seen[id] {
			seen[id] = true
			sources = append(sources, id)
		}
	}

	if len(invalid) > 0 {
		valid := models.KnownSources()
		validNames := make([]string, len(valid))
		for i, s := range valid {
			validNames[i] = string(s)
		}
		return nil, utils.NewValidationError(fmt.Sprintf(
			"unknown site(s): %s; valid sites: %s",
			strings.Join(invalid, ", "), strings.Join(validNames, ", ")))
	}

	return sources, nil
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
