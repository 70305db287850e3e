package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pesibar-dev/sikera-backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Allocation represents a budget allocation document (DPA) of an agency for
// a fiscal year.
//
// The three embedded category breakdowns mirror the aggregate fields: for
// every category, Allocated = Disbursed + Remaining holds after every
// committed ledger mutation.
type Allocation struct {
	DefaultModel
	Number     string     `json:"number"` // Document number of the DPA
	AgencyID   uuid.UUID  `json:"agencyId"`
	Agency     Agency     `json:"-"`
	Year       uint       `json:"year"`
	Deadline   *time.Time `json:"deadline"`
	ActivityID *uuid.UUID `json:"activityId"` // Set by the detail (rincian) step, nil until then

	TotalAllocated decimal.Decimal `json:"totalAllocated" gorm:"type:DECIMAL(20,8)"`
	TotalDisbursed decimal.Decimal `json:"totalDisbursed" gorm:"type:DECIMAL(20,8)"`
	TotalRemaining decimal.Decimal `json:"totalRemaining" gorm:"type:DECIMAL(20,8)"`

	Allocated types.CategoryAmounts `json:"allocated" gorm:"embedded;embeddedPrefix:allocated_"`
	Disbursed types.CategoryAmounts `json:"disbursed" gorm:"embedded;embeddedPrefix:disbursed_"`
	Remaining types.CategoryAmounts `json:"remaining" gorm:"embedded;embeddedPrefix:remaining_"`
}

// CreateAllocation creates the allocation, its twelve zero-initialized
// disbursement plan entries and, if it does not exist yet, the fiscal year
// reference record. Everything happens in one transaction: an allocation
// never exists without its plan rows.
func CreateAllocation(db *gorm.DB, allocation *Allocation) error {
	if allocation.TotalAllocated.IsNegative() {
		return ErrAmountNegative
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&Agency{}, allocation.AgencyID).Error; err != nil {
			return err
		}

		if allocation.Year == 0 {
			allocation.Year = uint(time.Now().In(time.UTC).Year())
		}

		allocation.TotalDisbursed = decimal.Zero
		allocation.TotalRemaining = allocation.TotalAllocated
		allocation.Allocated = types.CategoryAmounts{}
		allocation.Disbursed = types.CategoryAmounts{}
		allocation.Remaining = types.CategoryAmounts{}

		if err := tx.Create(allocation).Error; err != nil {
			return err
		}

		entries := make([]PlanEntry, 0, 12)
		for month := uint8(1); month <= 12; month++ {
			entries = append(entries, PlanEntry{
				AllocationID: allocation.ID,
				Month:        month,
			})
		}
		if err := tx.Create(&entries).Error; err != nil {
			return err
		}

		var year FiscalYear
		return tx.Where(FiscalYear{Year: allocation.Year}).FirstOrCreate(&year).Error
	})
}

// allocationDelta applies a relative update to the running totals of an
// allocation. The update is expressed in SQL so that concurrent transactions
// cannot lose updates.
//
// With sign 1 the amounts are booked as disbursed, with sign -1 a previous
// booking is reversed.
func allocationDelta(tx *gorm.DB, allocationID uuid.UUID, amounts types.CategoryAmounts, sign int64) error {
	s := decimal.NewFromInt(sign)
	total := amounts.Total().Mul(s)

	return tx.Model(&Allocation{}).Where("id = ?", allocationID).Updates(map[string]any{
		"total_disbursed":       gorm.Expr("total_disbursed + ?", total),
		"total_remaining":       gorm.Expr("total_remaining - ?", total),
		"disbursed_operating":   gorm.Expr("disbursed_operating + ?", amounts.Operating.Mul(s)),
		"remaining_operating":   gorm.Expr("remaining_operating - ?", amounts.Operating.Mul(s)),
		"disbursed_capital":     gorm.Expr("disbursed_capital + ?", amounts.Capital.Mul(s)),
		"remaining_capital":     gorm.Expr("remaining_capital - ?", amounts.Capital.Mul(s)),
		"disbursed_contingency": gorm.Expr("disbursed_contingency + ?", amounts.Contingency.Mul(s)),
		"remaining_contingency": gorm.Expr("remaining_contingency - ?", amounts.Contingency.Mul(s)),
		"disbursed_transfer":    gorm.Expr("disbursed_transfer + ?", amounts.Transfer.Mul(s)),
		"remaining_transfer":    gorm.Expr("remaining_transfer - ?", amounts.Transfer.Mul(s)),
	}).Error
}
