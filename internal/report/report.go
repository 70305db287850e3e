// Package report builds the XLSX report for a budget allocation document.
package report

import (
	"fmt"

	"github.com/pesibar-dev/sikera-backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"gorm.io/gorm"
)

const sheetName = "Realisasi"

var monthNames = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var printer = message.NewPrinter(language.Indonesian)

// FormatRupiah renders a whole-Rupiah amount with Indonesian digit grouping,
// e.g. "Rp 1.234.567".
func FormatRupiah(amount decimal.Decimal) string {
	return printer.Sprintf("Rp %v", number.Decimal(amount.IntPart()))
}

// MonthName returns the Indonesian name for a month between 1 and 12.
func MonthName(month uint8) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// BuildAllocationReport builds the realization workbook for one budget
// document: the twelve months of the disbursement plan with a running
// remainder, followed by the totals row.
func BuildAllocationReport(db *gorm.DB, allocationID string) (*excelize.File, error) {
	var allocation models.Allocation
	if err := db.First(&allocation, "id = ?", allocationID).Error; err != nil {
		return nil, err
	}

	var agency models.Agency
	if err := db.First(&agency, allocation.AgencyID).Error; err != nil {
		return nil, err
	}

	var entries []models.PlanEntry
	err := db.
		Where(&models.PlanEntry{AllocationID: allocation.ID}).
		Order("month ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetName)

	cell := func(column string, row int, value any) {
		_ = f.SetCellValue(sheetName, fmt.Sprintf("%s%d", column, row), value)
	}

	cell("A", 1, "Laporan Realisasi Anggaran")
	cell("A", 2, agency.Name)
	cell("A", 3, fmt.Sprintf("Nomor DPA: %s", allocation.Number))
	cell("A", 4, fmt.Sprintf("Tahun Anggaran: %d", allocation.Year))

	headerRow := 6
	headers := []string{"Bulan", "Operasi", "Modal", "Tak Terduga", "Transfer", "Jumlah", "Sisa"}
	for i, header := range headers {
		column, _ := excelize.ColumnNumberToName(i + 1)
		cell(column, headerRow, header)
	}

	remaining := allocation.TotalAllocated
	row := headerRow + 1
	for _, entry := range entries {
		remaining = remaining.Sub(entry.Total)

		cell("A", row, MonthName(entry.Month))
		cell("B", row, FormatRupiah(entry.Amounts.Operating))
		cell("C", row, FormatRupiah(entry.Amounts.Capital))
		cell("D", row, FormatRupiah(entry.Amounts.Contingency))
		cell("E", row, FormatRupiah(entry.Amounts.Transfer))
		cell("F", row, FormatRupiah(entry.Total))
		cell("G", row, FormatRupiah(remaining))
		row++
	}

	cell("A", row, "Jumlah")
	cell("B", row, FormatRupiah(allocation.Disbursed.Operating))
	cell("C", row, FormatRupiah(allocation.Disbursed.Capital))
	cell("D", row, FormatRupiah(allocation.Disbursed.Contingency))
	cell("E", row, FormatRupiah(allocation.Disbursed.Transfer))
	cell("F", row, FormatRupiah(allocation.TotalDisbursed))
	cell("G", row, FormatRupiah(allocation.TotalRemaining))

	return f, nil
}

// Filename returns the attachment name for the report of an allocation.
func Filename(allocation models.Allocation) string {
	return fmt.Sprintf("realisasi-%d-%s.xlsx", allocation.Year, allocation.ID)
}
