package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"govista/domain/dataset"
	apperrors "govista/internal/errors"
)

// FileReader normalizes uploaded Excel and CSV files into the
// {headers, rows} structure the engine consumes. The first sheet row
// is always treated as the header row.
type FileReader struct{}

// NewFileReader creates a file reader
func NewFileReader() *FileReader {
	return &FileReader{}
}

// Read parses an uploaded file by extension (".csv", ".xlsx") into a
// normalized dataset named after the file.
func (r *FileReader) Read(src io.Reader, filename string) (*dataset.Dataset, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return r.ReadCSV(src, filename)
	case ".xlsx", ".xls":
		return r.ReadExcel(src, filename)
	default:
		return nil, apperrors.InvalidInput(fmt.Sprintf("unsupported file type: %s", ext))
	}
}

// ReadCSV parses CSV content into a normalized dataset
func (r *FileReader) ReadCSV(src io.Reader, filename string) (*dataset.Dataset, error) {
	start := time.Now()
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.IngestFailed("failed to read CSV file", err)
	}
	log.Printf("[FileReader] CSV file read in %.2fms (%d rows)", float64(time.Since(start).Nanoseconds())/1e6, len(records))

	if len(records) == 0 {
		return nil, apperrors.InvalidInput("CSV file has no header row")
	}
	return r.processRecords(records, filename), nil
}

// ReadExcel parses XLSX content into a normalized dataset, reading
// the first sheet of the workbook.
func (r *FileReader) ReadExcel(src io.Reader, filename string) (*dataset.Dataset, error) {
	start := time.Now()
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, apperrors.IngestFailed("failed to open Excel file", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.InvalidInput("Excel workbook has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.IngestFailed(fmt.Sprintf("failed to read sheet %s", sheets[0]), err)
	}
	log.Printf("[FileReader] Sheet %q read in %.2fms (%d rows)", sheets[0], float64(time.Since(start).Nanoseconds())/1e6, len(records))

	if len(records) == 0 {
		return nil, apperrors.InvalidInput("Excel sheet has no header row")
	}
	return r.processRecords(records, filename), nil
}

// processRecords converts raw string records into a dataset. Cells
// that parse fully as numbers become float64; empty cells are
// omitted from the row rather than stored as nulls.
func (r *FileReader) processRecords(records [][]string, filename string) *dataset.Dataset {
	headerRow := records[0]
	headers := make([]string, len(headerRow))
	for i, h := range headerRow {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]dataset.Row, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		row := make(dataset.Row, len(headers))
		for j, cell := range records[i] {
			if j >= len(headers) {
				break
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			row[headers[j]] = normalizeCell(cell)
		}
		rows = append(rows, row)
	}

	log.Printf("[FileReader] %s processed (%d columns, %d rows)", filename, len(headers), len(rows))

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	ds := dataset.New(name, headers, rows)
	ds.Source = "upload"
	return ds
}

// normalizeCell keeps numeric-looking cells as float64 and booleans
// as bool; everything else stays a string. Identifier-shaped values
// like "C1001" do not parse and stay strings.
func normalizeCell(cell string) interface{} {
	if f, ok := dataset.TryParseNumber(cell); ok {
		return f
	}
	switch strings.ToLower(cell) {
	case "true":
		return true
	case "false":
		return false
	}
	return cell
}
