package document

import (
	"fmt"
	"strings"
	"time"

	"formular230/internal/domain/form"
)

const fileDateLayout = "2006-01-02"

func PDFFileName(f form.Form) string {
	return fmt.Sprintf("Formular_230_%s_%s.pdf", safe(f.LastName), safe(f.FirstName))
}

func BulkFileName(day time.Time) string {
	return "Formulare_230_Bulk_" + day.Format(fileDateLayout) + ".pdf"
}

func JSONFileName(f form.Form) string {
	return fmt.Sprintf("formular_%s_%s.json", safe(f.LastName), safe(f.FirstName))
}

func SpreadsheetFileName(day time.Time) string {
	return "Formulare_230_" + day.Format(fileDateLayout) + ".xlsx"
}

// safe оставляет в имени файла только то, что можно отдать в Content-Disposition
func safe(s string) string {
	s = Transliterate(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, s)
}
