// Package export renders merged result sets as downloadable CSV and Excel
// documents with a flat, fixed column layout.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"jobgate/pkg/models"
)

// columns is the flat export schema. Structured fields (location, salary)
// are unpacked into one column each so spreadsheets stay filterable.
var columns = []string{
	"title",
	"company",
	"site",
	"job_url",
	"city",
	"state",
	"country",
	"is_remote",
	"job_type",
	"job_level",
	"date_posted",
	"salary_min",
	"salary_max",
	"salary_interval",
	"salary_currency",
	"description",
	"emails",
	"skills",
	"company_url",
	"company_industry",
}

// row flattens one record into the export schema, in column order.
func row(r models.JobRecord) []string {
	var salaryMin, salaryMax, salaryInterval, salaryCurrency string
	if r.Salary != nil {
		salaryMin = formatFloat(r.Salary.MinAmount)
		salaryMax = formatFloat(r.Salary.MaxAmount)
		salaryInterval = r.Salary.Interval
		salaryCurrency = r.Salary.Currency
	}

	return []string{
		r.Title,
		r.Company,
		string(r.Source),
		r.JobURL,
		r.Location.City,
		r.Location.State,
		r.Location.Country,
		strconv.FormatBool(r.IsRemote),
		r.JobType,
		r.JobLevel,
		r.DatePosted,
		salaryMin,
		salaryMax,
		salaryInterval,
		salaryCurrency,
		r.Description,
		strings.Join(r.ContactEmails, ", "),
		strings.Join(r.Skills, ", "),
		r.CompanyURL,
		r.CompanyIndustry,
	}
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

// CSV renders the records as a CSV document. The header row is always
// present, even for an empty result set.
func CSV(records []models.JobRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(row(r)); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Excel renders the records as an xlsx workbook with a single sheet.
func Excel(records []models.JobRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	for col, name := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	for i, r := range records {
		for col, value := range row(r) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
