package models

import (
	"github.com/google/uuid"
	"github.com/pesibar-dev/sikera-backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RealizationStatus reports whether a realization has reached its target.
type RealizationStatus string

const (
	StatusReached    RealizationStatus = "reached"
	StatusNotReached RealizationStatus = "not-reached"
)

// Realization tracks actual spend against one sub-activity for one agency
// and fiscal year. At most one record exists per (sub-activity, agency,
// year); additional sub-activity line items for the same triple merge into
// the existing record.
type Realization struct {
	DefaultModel
	SubActivityID uuid.UUID   `json:"subActivityId" gorm:"uniqueIndex:realization_target"`
	SubActivity   SubActivity `json:"-"`
	AgencyID      uuid.UUID   `json:"agencyId" gorm:"uniqueIndex:realization_target"`
	Agency        Agency      `json:"-"`
	Year          uint        `json:"year" gorm:"uniqueIndex:realization_target"`

	// Pagu is the ledger target: the total amount allocated to this triple.
	Pagu     decimal.Decimal   `json:"pagu" gorm:"type:DECIMAL(20,8)"`
	Realized decimal.Decimal   `json:"realized" gorm:"type:DECIMAL(20,8)"` // Cumulative over all twelve months
	Status   RealizationStatus `json:"status"`

	Allocated       types.CategoryAmounts `json:"allocated" gorm:"embedded;embeddedPrefix:allocated_"`
	RealizedAmounts types.CategoryAmounts `json:"realizedAmounts" gorm:"embedded;embeddedPrefix:realized_"`
	Remaining       types.CategoryAmounts `json:"remaining" gorm:"embedded;embeddedPrefix:remaining_"`
}

// RealizationMonth is one month of actual spend for a realization record.
// Twelve exist per record, created zero-initialized with it.
type RealizationMonth struct {
	DefaultModel
	RealizationID uuid.UUID   `json:"realizationId" gorm:"uniqueIndex:realization_month"`
	Realization   Realization `json:"-"`
	Month         uint8       `json:"month" gorm:"uniqueIndex:realization_month;check:month_range,month >= 1 AND month <= 12"`

	Amounts types.CategoryAmounts `json:"amounts" gorm:"embedded;embeddedPrefix:amount_"`
	Note    string                `json:"note"`
}

// mergeRealization books sub-activity amounts into the realization record for
// the (sub-activity, agency, year) triple.
//
// If no record exists, it is created with the amounts as target and its
// twelve monthly entries. Otherwise target and per-category allocations are
// incremented, so several line items can fund the same target.
func mergeRealization(tx *gorm.DB, subActivityID, agencyID uuid.UUID, year uint, amounts types.CategoryAmounts) error {
	var realization Realization
	err := tx.Where(&Realization{
		SubActivityID: subActivityID,
		AgencyID:      agencyID,
		Year:          year,
	}).Limit(1).Find(&realization).Error
	if err != nil {
		return err
	}

	if realization.ID == uuid.Nil {
		realization = Realization{
			SubActivityID: subActivityID,
			AgencyID:      agencyID,
			Year:          year,
			Pagu:          amounts.Total(),
			Realized:      decimal.Zero,
			Status:        StatusNotReached,
			Allocated:     amounts,
			Remaining:     amounts,
		}
		if err := tx.Create(&realization).Error; err != nil {
			return err
		}

		months := make([]RealizationMonth, 0, 12)
		for month := uint8(1); month <= 12; month++ {
			months = append(months, RealizationMonth{
				RealizationID: realization.ID,
				Month:         month,
			})
		}
		return tx.Create(&months).Error
	}

	return tx.Model(&Realization{}).Where("id = ?", realization.ID).Updates(map[string]any{
		"pagu":                  gorm.Expr("pagu + ?", amounts.Total()),
		"allocated_operating":   gorm.Expr("allocated_operating + ?", amounts.Operating),
		"allocated_capital":     gorm.Expr("allocated_capital + ?", amounts.Capital),
		"allocated_contingency": gorm.Expr("allocated_contingency + ?", amounts.Contingency),
		"allocated_transfer":    gorm.Expr("allocated_transfer + ?", amounts.Transfer),
	}).Error
}

// RecordMonthlyRealization updates one monthly entry to the given amounts and
// applies the difference to the parent record's cumulative fields.
//
// The parent carries one running total shared by twelve independent months,
// so the update applies the delta between the new and the previously stored
// amounts rather than the absolute values. A missing month or parent record
// is an error.
func RecordMonthlyRealization(db *gorm.DB, id uuid.UUID, amounts types.CategoryAmounts, note string) error {
	if amounts.HasNegative() {
		return ErrAmountNegative
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var month RealizationMonth
		if err := tx.First(&month, id).Error; err != nil {
			return err
		}

		var realization Realization
		if err := tx.First(&realization, month.RealizationID).Error; err != nil {
			return err
		}

		delta := amounts.Sub(month.Amounts)

		month.Amounts = amounts
		month.Note = note
		if err := tx.Save(&month).Error; err != nil {
			return err
		}

		newRealized := realization.Realized.Add(delta.Total())
		status := StatusNotReached
		if realization.Pagu.IsPositive() && newRealized.GreaterThanOrEqual(realization.Pagu) {
			status = StatusReached
		}

		return tx.Model(&Realization{}).Where("id = ?", realization.ID).Updates(map[string]any{
			"realized":              gorm.Expr("realized + ?", delta.Total()),
			"realized_operating":    gorm.Expr("realized_operating + ?", delta.Operating),
			"remaining_operating":   gorm.Expr("remaining_operating - ?", delta.Operating),
			"realized_capital":      gorm.Expr("realized_capital + ?", delta.Capital),
			"remaining_capital":     gorm.Expr("remaining_capital - ?", delta.Capital),
			"realized_contingency":  gorm.Expr("realized_contingency + ?", delta.Contingency),
			"remaining_contingency": gorm.Expr("remaining_contingency - ?", delta.Contingency),
			"realized_transfer":     gorm.Expr("realized_transfer + ?", delta.Transfer),
			"remaining_transfer":    gorm.Expr("remaining_transfer - ?", delta.Transfer),
			"status":                status,
		}).Error
	})
}
