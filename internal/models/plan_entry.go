package models

import (
	"github.com/google/uuid"
	"github.com/pesibar-dev/sikera-backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PlanEntry is one month of the disbursement plan (rencana penarikan) of an
// allocation. Exactly twelve entries exist per allocation. They are created
// together with the allocation and only ever updated in place.
type PlanEntry struct {
	DefaultModel
	AllocationID uuid.UUID  `json:"allocationId" gorm:"uniqueIndex:plan_allocation_month"`
	Allocation   Allocation `json:"-"`
	Month        uint8      `json:"month" gorm:"uniqueIndex:plan_allocation_month;check:month_range,month >= 1 AND month <= 12"`

	Amounts types.CategoryAmounts `json:"amounts" gorm:"embedded;embeddedPrefix:amount_"`
	Total   decimal.Decimal       `json:"total" gorm:"type:DECIMAL(20,8)"`
}

// BeforeSave keeps the stored total consistent with the category amounts.
func (p *PlanEntry) BeforeSave(_ *gorm.DB) error {
	p.Total = p.Amounts.Total()
	return nil
}

// PlanEntryUpdate is the per-month part of a disbursement plan update.
type PlanEntryUpdate struct {
	ID      uuid.UUID             `json:"id"`
	Amounts types.CategoryAmounts `json:"amounts"`
}

// ReplaceDisbursementPlan overwrites the twelve monthly plan entries of an
// allocation and the allocation's per-category disbursed/remaining fields.
//
// Every entry of the plan must be submitted exactly once. The server
// recomputes the category aggregates from the submitted entries and rejects
// the update when the client-supplied disbursed totals disagree, so the
// stored aggregates are always the sum of the stored months. The remaining
// breakdown is derived as allocated minus disbursed, never taken from the
// client.
func ReplaceDisbursementPlan(db *gorm.DB, allocationID uuid.UUID, disbursed types.CategoryAmounts, updates []PlanEntryUpdate) error {
	if len(updates) != 12 {
		return ErrPlanEntryCountInvalid
	}

	sum := types.CategoryAmounts{}
	for _, update := range updates {
		if update.Amounts.HasNegative() {
			return ErrAmountNegative
		}
		sum = sum.Add(update.Amounts)
	}

	if !sum.Equal(disbursed) {
		return ErrPlanTotalsMismatch
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var allocation Allocation
		if err := tx.First(&allocation, allocationID).Error; err != nil {
			return err
		}

		var entries []PlanEntry
		if err := tx.Where(&PlanEntry{AllocationID: allocationID}).Find(&entries).Error; err != nil {
			return err
		}

		byID := make(map[uuid.UUID]PlanEntry, len(entries))
		for _, entry := range entries {
			byID[entry.ID] = entry
		}

		for _, update := range updates {
			entry, ok := byID[update.ID]
			if !ok {
				return ErrPlanEntryNotInPlan
			}
			// A repeated ID fails the lookup on its second occurrence
			delete(byID, update.ID)

			entry.Amounts = update.Amounts
			if err := tx.Save(&entry).Error; err != nil {
				return err
			}
		}

		remaining := allocation.Allocated.Sub(disbursed)

		return tx.Model(&Allocation{}).Where("id = ?", allocationID).Updates(map[string]any{
			"disbursed_operating":   disbursed.Operating,
			"disbursed_capital":     disbursed.Capital,
			"disbursed_contingency": disbursed.Contingency,
			"disbursed_transfer":    disbursed.Transfer,
			"remaining_operating":   remaining.Operating,
			"remaining_capital":     remaining.Capital,
			"remaining_contingency": remaining.Contingency,
			"remaining_transfer":    remaining.Transfer,
		}).Error
	})
}
