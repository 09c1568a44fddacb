package calculator

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Bill"

var billHeader = []interface{}{"Item", "Price/kg", "Weight", "Unit", "Subtotal", "Discount %", "Discount", "Total"}

// WriteXLSX writes the bill as a single-sheet workbook.
func (b Bill) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &billHeader); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", "H1", bold); err != nil {
		return err
	}

	row := 2
	for _, l := range b.Lines {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := []interface{}{l.Name, l.PricePerKg, l.Weight, string(l.Unit), l.Subtotal, l.Discount, l.DiscountAmount, l.Total}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return err
		}
		row++
	}

	totalLabel, _ := excelize.CoordinatesToCellName(7, row)
	totalCell, _ := excelize.CoordinatesToCellName(8, row)
	if err := f.SetCellValue(sheetName, totalLabel, "Grand Total"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetName, totalCell, b.GrandTotal); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, totalLabel, totalCell, bold); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
