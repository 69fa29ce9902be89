package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportFerdigeRegistreringer writes the caseworker's finished registrations
// to an Excel workbook for reporting
func ExportFerdigeRegistreringer(db *gorm.DB, createdBy string) (*bytes.Buffer, error) {
	registreringer, err := ListRegistreringer(db, createdBy, true)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Registreringer"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Registrering", "Sakstype", "Ytelse", "Saken gjelder",
		"Journalpost", "Behandling", "Mottatt klageinstans", "Ferdig",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "H1", headerStyle)
	f.SetColWidth(sheet, "A", "H", 24)

	for i, r := range registreringer {
		row := i + 2
		values := []interface{}{
			r.ID,
			deref(r.TypeID),
			ytelseNavn(r.YtelseID),
			deref(r.SakenGjelderValue),
			deref(r.JournalpostID),
			deref(r.BehandlingID),
			dateOrEmpty(r.MottattKlageinstans),
			dateOrEmpty(r.FinishedAt),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}
	return buf, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ytelseNavn(ytelseID *string) string {
	if ytelseID == nil {
		return ""
	}
	if ytelse, ok := GetYtelse(*ytelseID); ok {
		return ytelse.Navn
	}
	return strings.ToUpper(*ytelseID)
}

func dateOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
