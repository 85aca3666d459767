package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/segyhp/fintrack/internal/domain"
	customError "github.com/segyhp/fintrack/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Column names every plan file must carry in its header row.
const (
	ColumnMonth        = "month"
	ColumnCategoryName = "category_name"
	ColumnSum          = "sum"
)

// RequiredColumns lists the header names of a plan file.
var RequiredColumns = []string{ColumnMonth, ColumnCategoryName, ColumnSum}

// Parser turns an uploaded plan file into plan rows. It checks the file
// structure only; period, category and duplicate rules are applied on insert.
type Parser struct {
	validator *validator.Validate
}

func NewParser() *Parser {
	return &Parser{validator: validator.New()}
}

// Parse reads a .xlsx or .csv plan file. The format is chosen by the file
// extension. Rows are numbered as in the file, the header being row 1.
func (p *Parser) Parse(r io.Reader, filename string) ([]domain.PlanRow, error) {
	var (
		table  [][]string
		serial bool
		err    error
	)

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx":
		table, err = readXLSX(r)
		serial = true
	case ".csv":
		table, err = readCSV(r)
	default:
		return nil, customError.WrapInvalidFile(fmt.Sprintf("unsupported file type %q, expected .xlsx or .csv", ext))
	}
	if err != nil {
		return nil, err
	}

	if len(table) == 0 {
		return nil, customError.WrapInvalidFile("file is empty")
	}

	columns, err := headerIndex(table[0])
	if err != nil {
		return nil, err
	}

	rows := make([]domain.PlanRow, 0, len(table)-1)
	for i, record := range table[1:] {
		line := i + 2
		if blank(record) {
			continue
		}

		row, err := p.parseRow(record, columns, line, serial)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func (p *Parser) parseRow(record []string, columns map[string]int, line int, serial bool) (domain.PlanRow, error) {
	sumCell := cell(record, columns[ColumnSum])
	if sumCell == "" {
		return domain.PlanRow{}, customError.WrapInvalidFile(fmt.Sprintf("row %d: sum is empty", line))
	}

	sum, err := decimal.NewFromString(sumCell)
	if err != nil || !sum.IsInteger() {
		return domain.PlanRow{}, customError.WrapInvalidFile(fmt.Sprintf("row %d: sum '%s' is not a whole number", line, sumCell))
	}
	if !sum.Equal(decimal.NewFromInt(sum.IntPart())) {
		return domain.PlanRow{}, customError.WrapInvalidFile(fmt.Sprintf("row %d: sum '%s' is out of range", line, sumCell))
	}

	month := cell(record, columns[ColumnMonth])
	if serial {
		month = fromSerial(month)
	}

	row := domain.PlanRow{
		Month:        month,
		CategoryName: cell(record, columns[ColumnCategoryName]),
		Sum:          sum.IntPart(),
	}

	if err := p.validator.Struct(row); err != nil {
		return domain.PlanRow{}, customError.WrapInvalidFile(fmt.Sprintf("row %d: %v", line, err))
	}

	return row, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, customError.WrapInvalidFile(fmt.Sprintf("cannot open workbook: %v", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, customError.WrapInvalidFile("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, customError.WrapInvalidFile(fmt.Sprintf("cannot read sheet %s: %v", sheets[0], err))
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, customError.WrapInvalidFile(fmt.Sprintf("cannot read csv: %v", err))
	}
	return rows, nil
}

func headerIndex(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, customError.WrapInvalidFile(fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")))
	}

	return columns, nil
}

// fromSerial converts an Excel date serial to YYYY-MM-DD. Anything else is
// returned unchanged.
func fromSerial(value string) string {
	serial, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return value
	}
	return domain.DateOf(t).String()
}

func cell(record []string, index int) string {
	if index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}

func blank(record []string) bool {
	for _, value := range record {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}
