package importer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/segyhp/fintrack/internal/domain"
	customError "github.com/segyhp/fintrack/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows ...[]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cellName, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParse_XLSX(t *testing.T) {
	file := workbook(t,
		[]any{"month", "category_name", "sum"},
		[]any{time.Date(2021, time.February, 1, 0, 0, 0, 0, time.UTC), "Issuance", 2000},
		[]any{"2021-03-01", "Collection", 1500},
	)

	rows, err := NewParser().Parse(file, "plans.xlsx")

	require.NoError(t, err)
	assert.Equal(t, []domain.PlanRow{
		{Month: "2021-02-01", CategoryName: "Issuance", Sum: 2000},
		{Month: "2021-03-01", CategoryName: "Collection", Sum: 1500},
	}, rows)
}

func TestParse_XLSXMissingColumn(t *testing.T) {
	file := workbook(t,
		[]any{"month", "category"},
		[]any{"2021-03-01", "Collection"},
	)

	_, err := NewParser().Parse(file, "plans.XLSX")

	assert.ErrorIs(t, err, customError.ErrInvalidFile)
	assert.ErrorContains(t, err, "category_name, sum")
}

func TestParse_CSV(t *testing.T) {
	input := "\ufeffMonth, Category_Name, Sum\n" +
		"2021-02-01,Issuance,2000\n" +
		",,\n" +
		"2021-02-01,Collection,3000.00\n"

	rows, err := NewParser().Parse(strings.NewReader(input), "plans.csv")

	require.NoError(t, err)
	assert.Equal(t, []domain.PlanRow{
		{Month: "2021-02-01", CategoryName: "Issuance", Sum: 2000},
		{Month: "2021-02-01", CategoryName: "Collection", Sum: 3000},
	}, rows)
}

func TestParse_HeaderOnly(t *testing.T) {
	rows, err := NewParser().Parse(strings.NewReader("month,category_name,sum\n"), "plans.csv")

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParse_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		input    string
		wantErr  string
	}{
		{
			name:     "unsupported extension",
			filename: "plans.txt",
			input:    "month,category_name,sum\n",
			wantErr:  "unsupported file type",
		},
		{
			name:     "empty file",
			filename: "plans.csv",
			input:    "",
			wantErr:  "file is empty",
		},
		{
			name:     "empty sum",
			filename: "plans.csv",
			input:    "month,category_name,sum\n2021-02-01,Issuance,2000\n2021-03-01,Issuance,\n",
			wantErr:  "row 3: sum is empty",
		},
		{
			name:     "fractional sum",
			filename: "plans.csv",
			input:    "month,category_name,sum\n2021-02-01,Issuance,10.5\n",
			wantErr:  "not a whole number",
		},
		{
			name:     "sum beyond int64",
			filename: "plans.csv",
			input:    "month,category_name,sum\n2021-02-01,Issuance,18446744073709551617\n",
			wantErr:  "row 2: sum '18446744073709551617' is out of range",
		},
		{
			name:     "sum in exponent form beyond int64",
			filename: "plans.csv",
			input:    "month,category_name,sum\n2021-02-01,Issuance,1e30\n",
			wantErr:  "out of range",
		},
		{
			name:     "text sum",
			filename: "plans.csv",
			input:    "month,category_name,sum\n2021-02-01,Issuance,lots\n",
			wantErr:  "not a whole number",
		},
		{
			name:     "negative sum",
			filename: "plans.csv",
			input:    "month,category_name,sum\n2021-02-01,Issuance,-5\n",
			wantErr:  "Sum",
		},
		{
			name:     "missing category",
			filename: "plans.csv",
			input:    "month,category_name,sum\n2021-02-01,,5\n",
			wantErr:  "CategoryName",
		},
		{
			name:     "broken workbook",
			filename: "plans.xlsx",
			input:    "not a zip archive",
			wantErr:  "cannot open workbook",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().Parse(strings.NewReader(tt.input), tt.filename)

			assert.ErrorIs(t, err, customError.ErrInvalidFile)
			assert.Equal(t, customError.ErrCodeInvalidFile, customError.CodeOf(err))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestFromSerial(t *testing.T) {
	assert.Equal(t, "2021-02-01", fromSerial("44228"))
	assert.Equal(t, "2021-02-01", fromSerial("2021-02-01"))
	assert.Equal(t, "Feb 2021", fromSerial("Feb 2021"))
}
