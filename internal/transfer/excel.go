// Package transfer implements the spreadsheet bulk paths: vehicle
// import from xlsx and the three report exports.
package transfer

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/frotafleet/frotafleet/internal/common/apperr"
	"github.com/frotafleet/frotafleet/internal/vehicle"
)

// Spreadsheet column titles. These are the interchange contract with the
// operators' existing workbooks and stay in Portuguese.
const (
	ColFleet    = "Frota"
	ColPlate    = "Placa"
	ColAxles    = "Eixos"
	ColFloor    = "Piso"
	ColTrailer  = "Tipo de Carreta"
	ColLength   = "Comprimento"
	ColDocument = "Documento"
	ColHolder   = "Possuidor"
	ColLocation = "Local"
	ColStart    = "Data Locação"
	ColReturn   = "Data Devolução"
)

// ImportRequiredColumns must all be present in an import header row;
// ColDocument is optional and defaults to "Não".
var ImportRequiredColumns = []string{ColFleet, ColPlate, ColAxles, ColFloor, ColTrailer, ColLength}

// VehicleHeader is the export header for the vehicles report and doubles
// as a valid import header.
var VehicleHeader = []string{ColFleet, ColPlate, ColAxles, ColFloor, ColTrailer, ColLength}

// RentalHeader is the export header for the rented and history reports.
var RentalHeader = []string{ColFleet, ColPlate, ColAxles, ColFloor, ColTrailer, ColLength,
	ColHolder, ColLocation, ColStart, ColReturn}

// RowResult is the per-row outcome of an import. Rows are processed
// independently; a skipped row never aborts the file.
type RowResult struct {
	Row    int    `json:"row"` // 1-based spreadsheet row number
	Plate  string `json:"plate,omitempty"`
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

type parsedRow struct {
	num   int
	input vehicle.Input
	err   error
}

// parseVehicleSheet reads the first sheet, validates the header and
// coerces each data row. Coercion failures are recorded per row; a
// missing required column rejects the whole file.
func parseVehicleSheet(r io.Reader) ([]parsedRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperr.Validationf("cannot read workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperr.Validationf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: missing header row", apperr.ErrSchemaMismatch)
	}

	colIdx := map[string]int{}
	for i, name := range rows[0] {
		colIdx[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, required := range ImportRequiredColumns {
		if _, ok := colIdx[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", apperr.ErrSchemaMismatch, strings.Join(missing, ", "))
	}

	cell := func(row []string, col string) string {
		i, ok := colIdx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var parsed []parsedRow
	for n, row := range rows[1:] {
		p := parsedRow{num: n + 2} // +2: 1-based rows, after the header
		p.input = vehicle.Input{
			FleetCode:   cell(row, ColFleet),
			Plate:       cell(row, ColPlate),
			FloorType:   cell(row, ColFloor),
			TrailerType: cell(row, ColTrailer),
			Document:    cell(row, ColDocument),
		}
		axles, err := strconv.Atoi(cell(row, ColAxles))
		if err != nil {
			p.err = apperr.Validationf("%s is not an integer", ColAxles)
			parsed = append(parsed, p)
			continue
		}
		length, err := strconv.ParseFloat(cell(row, ColLength), 64)
		if err != nil {
			p.err = apperr.Validationf("%s is not numeric", ColLength)
			parsed = append(parsed, p)
			continue
		}
		p.input.Axles = axles
		p.input.Length = length
		parsed = append(parsed, p)
	}
	return parsed, nil
}

// buildSheet renders a report workbook: styled header row, one data row
// per record, frozen header pane.
func buildSheet(sheetName string, headers []string, data [][]any) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for rowIdx, record := range data {
		for colIdx, value := range record {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}
	return buf.Bytes(), nil
}
