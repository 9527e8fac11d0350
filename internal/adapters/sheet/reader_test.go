package sheet

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func writeWorkbook(t *testing.T, skipRows int, rows [][]string) string {
	t.Helper()
	workbook := excelize.NewFile()
	sheetName := workbook.GetSheetName(0)

	rowIndex := 1
	for i := 0; i < skipRows; i++ {
		cell, err := excelize.CoordinatesToCellName(1, rowIndex)
		require.NoError(t, err)
		require.NoError(t, workbook.SetSheetRow(sheetName, cell, &[]string{"preamble"}))
		rowIndex++
	}
	for _, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, rowIndex)
		require.NoError(t, err)
		values := row
		require.NoError(t, workbook.SetSheetRow(sheetName, cell, &values))
		rowIndex++
	}

	path := filepath.Join(t.TempDir(), "companies.xlsx")
	require.NoError(t, workbook.SaveAs(path))
	return path
}

func TestReadCompanies(t *testing.T) {
	path := writeWorkbook(t, 3, [][]string{
		{"Company", "Website", "Company Linkedin Url", "Location", "Industry"},
		{"Acme", "https://acme.com", "linkedin.com/company/acme", "Austin, TX", "fintech"},
		{"", "orphan.com", "linkedin.com/company/orphan", "", ""},
		{"Beta Labs", "beta.io", "", "", ""},
	})

	reader := NewReader(path, 3, zap.NewNop())
	companies, err := reader.ReadCompanies()
	require.NoError(t, err)

	// The row without a company name is dropped
	require.Len(t, companies, 2)
	assert.Equal(t, "Acme", companies[0].Name)
	assert.Equal(t, "https://acme.com", companies[0].Website)
	assert.Equal(t, "linkedin.com/company/acme", companies[0].LinkedInURL)
	assert.Equal(t, "Austin, TX", companies[0].Location)
	assert.Equal(t, "fintech", companies[0].Industry)
	assert.Equal(t, "Beta Labs", companies[1].Name)
	assert.Empty(t, companies[1].LinkedInURL)
	assert.Empty(t, companies[1].Location)
}

func TestReadCompaniesHeaderCaseInsensitive(t *testing.T) {
	path := writeWorkbook(t, 0, [][]string{
		{"COMPANY", "website", "Company LinkedIn Url"},
		{"Acme", "acme.com", "linkedin.com/company/acme"},
	})

	reader := NewReader(path, 0, zap.NewNop())
	companies, err := reader.ReadCompanies()
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "linkedin.com/company/acme", companies[0].LinkedInURL)
}

func TestReadCompaniesMissingCompanyColumn(t *testing.T) {
	path := writeWorkbook(t, 0, [][]string{
		{"Name", "URL"},
		{"Acme", "acme.com"},
	})

	reader := NewReader(path, 0, zap.NewNop())
	_, err := reader.ReadCompanies()
	assert.Error(t, err)
}

func TestReadCompaniesMissingFile(t *testing.T) {
	reader := NewReader(filepath.Join(t.TempDir(), "missing.xlsx"), 3, zap.NewNop())
	_, err := reader.ReadCompanies()
	assert.Error(t, err)
}
