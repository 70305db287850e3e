// Package types implements special types for SIKERA.
package types

import (
	"github.com/shopspring/decimal"
)

// CategoryAmounts is a money amount broken down into the four expenditure
// categories used throughout allocation and realization tracking.
//
// It is embedded into every model that carries a per-category breakdown so
// that the arithmetic on breakdowns is written once.
type CategoryAmounts struct {
	Operating   decimal.Decimal `json:"operating" gorm:"type:DECIMAL(20,8)"`   // Belanja operasi
	Capital     decimal.Decimal `json:"capital" gorm:"type:DECIMAL(20,8)"`     // Belanja modal
	Contingency decimal.Decimal `json:"contingency" gorm:"type:DECIMAL(20,8)"` // Belanja tak terduga
	Transfer    decimal.Decimal `json:"transfer" gorm:"type:DECIMAL(20,8)"`    // Belanja transfer
}

// Total returns the sum of the four categories.
func (a CategoryAmounts) Total() decimal.Decimal {
	return a.Operating.Add(a.Capital).Add(a.Contingency).Add(a.Transfer)
}

// Add returns the category-wise sum of a and b.
func (a CategoryAmounts) Add(b CategoryAmounts) CategoryAmounts {
	return CategoryAmounts{
		Operating:   a.Operating.Add(b.Operating),
		Capital:     a.Capital.Add(b.Capital),
		Contingency: a.Contingency.Add(b.Contingency),
		Transfer:    a.Transfer.Add(b.Transfer),
	}
}

// Sub returns the category-wise difference of a and b.
func (a CategoryAmounts) Sub(b CategoryAmounts) CategoryAmounts {
	return CategoryAmounts{
		Operating:   a.Operating.Sub(b.Operating),
		Capital:     a.Capital.Sub(b.Capital),
		Contingency: a.Contingency.Sub(b.Contingency),
		Transfer:    a.Transfer.Sub(b.Transfer),
	}
}

// HasNegative reports whether any category is negative.
func (a CategoryAmounts) HasNegative() bool {
	return a.Operating.IsNegative() || a.Capital.IsNegative() || a.Contingency.IsNegative() || a.Transfer.IsNegative()
}

// IsZero reports whether all four categories are zero.
func (a CategoryAmounts) IsZero() bool {
	return a.Operating.IsZero() && a.Capital.IsZero() && a.Contingency.IsZero() && a.Transfer.IsZero()
}

// Equal reports whether a and b are equal in every category.
func (a CategoryAmounts) Equal(b CategoryAmounts) bool {
	return a.Operating.Equal(b.Operating) && a.Capital.Equal(b.Capital) && a.Contingency.Equal(b.Contingency) && a.Transfer.Equal(b.Transfer)
}
