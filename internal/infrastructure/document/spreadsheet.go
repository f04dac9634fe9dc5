package document

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"formular230/internal/domain/form"
)

const sheetName = "Formulare"

var spreadsheetHeaders = []string{
	"ID", "Nume", "Prenume", "CNP", "Email", "Telefon", "Adresa",
	"Judet", "Localitate", "Perioada (ani)", "Imputernicire", "Data",
}

var spreadsheetWidths = []float64{16, 18, 18, 16, 28, 14, 50, 14, 18, 14, 14, 18}

// WriteSpreadsheet выгружает заявки в XLSX, одна строка на заявку, без подписей
func WriteSpreadsheet(w io.Writer, forms []form.Form) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	// Удаляем лист по умолчанию
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"6B46C1"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for col, header := range spreadsheetHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return err
		}

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, name, name, spreadsheetWidths[col]); err != nil {
			return err
		}
	}

	for i, fm := range forms {
		authorization := "Nu"
		if fm.WantsAuthorization {
			authorization = "Da"
		}
		row := []any{
			// id как строка: 13 цифр Excel показывает в экспоненциальной записи
			fmt.Sprintf("%d", fm.ID),
			fm.LastName, fm.FirstName, fm.CNP, fm.Email, fm.Phone, fm.Address(),
			fm.County, fm.City, string(fm.DistributionPeriod), authorization,
			fm.CreatedAt.Format("02.01.2006 15:04"),
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
