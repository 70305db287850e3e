package models

import (
	"github.com/google/uuid"
	"github.com/pesibar-dev/sikera-backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SubAllocation is a line item assigning part of a budget document to one
// sub-activity and funding source.
type SubAllocation struct {
	DefaultModel
	AllocationID    uuid.UUID     `json:"allocationId"`
	Allocation      Allocation    `json:"-"`
	SubActivityID   uuid.UUID     `json:"subActivityId"`
	SubActivity     SubActivity   `json:"-"`
	FundingSourceID uuid.UUID     `json:"fundingSourceId"`
	FundingSource   FundingSource `json:"-"`

	Location string `json:"location"`
	Target   string `json:"target"`
	Schedule string `json:"schedule"` // Planned execution period (waktu pelaksanaan)
	Note     string `json:"note"`

	Amounts types.CategoryAmounts `json:"amounts" gorm:"embedded;embeddedPrefix:amount_"`

	// Total is always the sum of the four category amounts. It is stored for
	// querying, but recomputed from the amounts on every write.
	Total decimal.Decimal `json:"total" gorm:"type:DECIMAL(20,8)"`
}

// BeforeSave keeps the stored total consistent with the category amounts.
func (s *SubAllocation) BeforeSave(_ *gorm.DB) error {
	s.Total = s.Amounts.Total()
	return nil
}

// AddSubAllocation books a new sub-activity line item.
//
// In one transaction it inserts the row, books the amounts against the
// parent allocation's running totals and merges them into the realization
// record for (sub-activity, agency, year), creating that record with its
// twelve monthly entries if it does not exist yet.
func AddSubAllocation(db *gorm.DB, sub *SubAllocation) error {
	if sub.Amounts.HasNegative() {
		return ErrAmountNegative
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var parent Allocation
		if err := tx.First(&parent, sub.AllocationID).Error; err != nil {
			return err
		}

		if err := tx.Create(sub).Error; err != nil {
			return err
		}

		if err := allocationDelta(tx, parent.ID, sub.Amounts, 1); err != nil {
			return err
		}

		return mergeRealization(tx, sub.SubActivityID, parent.AgencyID, parent.Year, sub.Amounts)
	})
}

// UpdateSubAllocation overwrites the line item and books the new amounts the
// same way AddSubAllocation does.
//
// The previous contribution of the row is not reversed first. This mirrors
// the established ledger behavior; see DESIGN.md.
func UpdateSubAllocation(db *gorm.DB, id uuid.UUID, updated SubAllocation) error {
	if updated.Amounts.HasNegative() {
		return ErrAmountNegative
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var sub SubAllocation
		if err := tx.First(&sub, id).Error; err != nil {
			return err
		}

		var parent Allocation
		if err := tx.First(&parent, sub.AllocationID).Error; err != nil {
			return err
		}

		sub.SubActivityID = updated.SubActivityID
		sub.FundingSourceID = updated.FundingSourceID
		sub.Location = updated.Location
		sub.Target = updated.Target
		sub.Schedule = updated.Schedule
		sub.Note = updated.Note
		sub.Amounts = updated.Amounts

		if err := tx.Save(&sub).Error; err != nil {
			return err
		}

		if err := allocationDelta(tx, parent.ID, sub.Amounts, 1); err != nil {
			return err
		}

		return mergeRealization(tx, sub.SubActivityID, parent.AgencyID, parent.Year, sub.Amounts)
	})
}

// DeleteSubAllocation reverses the booking on the parent allocation with the
// stored row amounts and then deletes the row, all in one transaction.
//
// The merge into the realization record is not reversed: several line items
// can contribute to the same realization record and the data model carries no
// attribution to split a contribution back out. See DESIGN.md.
func DeleteSubAllocation(db *gorm.DB, id uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var sub SubAllocation
		if err := tx.First(&sub, id).Error; err != nil {
			return err
		}

		if err := allocationDelta(tx, sub.AllocationID, sub.Amounts, -1); err != nil {
			return err
		}

		return tx.Delete(&sub).Error
	})
}
