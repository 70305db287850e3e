package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BlankoRowType discriminates the rows of a merged blanko table.
type BlankoRowType string

const (
	BlankoRowCategory BlankoRowType = "category"
	BlankoRowItem     BlankoRowType = "item"
	BlankoRowSpacer   BlankoRowType = "spacer"
)

// BlankoRow is one display row of the merged cost breakdown table.
type BlankoRow struct {
	Type       BlankoRowType   `json:"type"`
	Number     string          `json:"number"` // Roman for categories, decimal for items, empty for spacers
	ID         string          `json:"id"`
	CategoryID uuid.UUID       `json:"categoryId"`
	Name       string          `json:"name"`
	Volume     decimal.Decimal `json:"volume"`
	Unit       string          `json:"unit"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Total      decimal.Decimal `json:"total"`
}

// MergeBlanko flattens categories and their items into the numbered table the
// blanko sheet displays: each category row is numbered with a Roman numeral
// and followed by its items numbered from 1, then a spacer row. The trailing
// spacer is dropped.
func MergeBlanko(categories []BlankoCategory, items []BlankoItem) []BlankoRow {
	rows := make([]BlankoRow, 0, len(categories)+len(items))
	spacer := 1

	for i, category := range categories {
		rows = append(rows, BlankoRow{
			Type:       BlankoRowCategory,
			Number:     toRoman(i + 1),
			ID:         category.ID.String(),
			CategoryID: category.ID,
			Name:       category.Name,
			Total:      category.Total,
		})

		n := 0
		for _, item := range items {
			if item.CategoryID != category.ID {
				continue
			}
			n++
			rows = append(rows, BlankoRow{
				Type:       BlankoRowItem,
				Number:     fmt.Sprint(n),
				ID:         item.ID.String(),
				CategoryID: item.CategoryID,
				Name:       item.Job,
				Volume:     item.Volume,
				Unit:       item.Unit,
				UnitPrice:  item.UnitPrice,
				Total:      item.Total,
			})
		}

		rows = append(rows, BlankoRow{
			Type:       BlankoRowSpacer,
			ID:         fmt.Sprintf("spacer-%d", spacer),
			CategoryID: category.ID,
		})
		spacer++
	}

	if len(rows) > 0 && rows[len(rows)-1].Type == BlankoRowSpacer {
		rows = rows[:len(rows)-1]
	}

	return rows
}

var romanNumerals = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func toRoman(n int) string {
	var roman string
	for _, numeral := range romanNumerals {
		for n >= numeral.value {
			roman += numeral.symbol
			n -= numeral.value
		}
	}
	return roman
}
