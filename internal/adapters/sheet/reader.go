// Package sheet reads the company roster from an Excel workbook.
package sheet

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/spoorthi/outreach-ai/internal/core"
)

// Expected header labels, matched case-insensitively. Location, industry
// and description are optional; the exclusion gate and the composer use
// them when present.
const (
	columnCompany     = "company"
	columnWebsite     = "website"
	columnLinkedIn    = "company linkedin url"
	columnLocation    = "location"
	columnIndustry    = "industry"
	columnDescription = "description"
)

// Reader loads companies from the first sheet of an xlsx workbook. The
// first skipRows rows are discarded before the header row.
type Reader struct {
	path     string
	skipRows int
	logger   *zap.Logger
}

// NewReader creates a new workbook reader
func NewReader(path string, skipRows int, logger *zap.Logger) *Reader {
	return &Reader{
		path:     path,
		skipRows: skipRows,
		logger:   logger,
	}
}

// ReadCompanies reads all company rows. Rows without a company name are
// dropped.
func (r *Reader) ReadCompanies() ([]core.CompanyRecord, error) {
	workbook, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", r.path, err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", r.path)
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) <= r.skipRows {
		return nil, fmt.Errorf("sheet %s has no rows after skipping %d", sheets[0], r.skipRows)
	}

	header := rows[r.skipRows]
	companyCol, websiteCol, linkedinCol := -1, -1, -1
	locationCol, industryCol, descriptionCol := -1, -1, -1
	for i, label := range header {
		switch strings.ToLower(strings.TrimSpace(label)) {
		case columnCompany:
			companyCol = i
		case columnWebsite:
			websiteCol = i
		case columnLinkedIn:
			linkedinCol = i
		case columnLocation:
			locationCol = i
		case columnIndustry:
			industryCol = i
		case columnDescription:
			descriptionCol = i
		}
	}
	if companyCol < 0 {
		return nil, fmt.Errorf("sheet %s has no Company column in row %d", sheets[0], r.skipRows+1)
	}

	var companies []core.CompanyRecord
	for _, row := range rows[r.skipRows+1:] {
		record := core.CompanyRecord{
			Name:        cell(row, companyCol),
			Website:     cell(row, websiteCol),
			LinkedInURL: cell(row, linkedinCol),
			Location:    cell(row, locationCol),
			Industry:    cell(row, industryCol),
			Description: cell(row, descriptionCol),
		}
		if record.Name == "" {
			continue
		}
		companies = append(companies, record)
	}

	r.logger.Info("Loaded companies from workbook",
		zap.String("path", r.path),
		zap.Int("count", len(companies)))
	return companies, nil
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
