package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Monitoring is one monitored construction contract.
type Monitoring struct {
	DefaultModel
	AgencyID      uuid.UUID   `json:"agencyId"`
	Agency        Agency      `json:"-"`
	SubActivityID uuid.UUID   `json:"subActivityId"`
	SubActivity   SubActivity `json:"-"`
	Year          uint        `json:"year"`

	JobName        string          `json:"jobName"`
	Contractor     string          `json:"contractor"`
	ContractValue  decimal.Decimal `json:"contractValue" gorm:"type:DECIMAL(20,8)"`
	ContractNumber string          `json:"contractNumber"`

	ProcurementType      string     `json:"procurementType"`
	ProcurementMechanism string     `json:"procurementMechanism"`
	SelfManaged          string     `json:"selfManaged"` // Swakelola classification
	ContractDate         *time.Time `json:"contractDate"`
	StartDate            *time.Time `json:"startDate"`
	EndDate              *time.Time `json:"endDate"`
	Officer              string     `json:"officer"` // Contract officer (PPK)
	Location             string     `json:"location"`
	Obstacles            string     `json:"obstacles"`
	Workforce            uint       `json:"workforce"`
	SafetyMeasures       string     `json:"safetyMeasures"` // Penerapan K3
	Note                 string     `json:"note"`
	Progress             string     `json:"progress"` // Physical realization, free text

	// Site safety and workforce information
	HasInsurance     bool   `json:"hasInsurance"`
	HasAccidentPlan  bool   `json:"hasAccidentPlan"`
	HasFirstAid      bool   `json:"hasFirstAid"`
	HasSignage       bool   `json:"hasSignage"`
	WorkerOrigin     string `json:"workerOrigin"`
	HasCertifiedCrew bool   `json:"hasCertifiedCrew"`
	WorkerCount      uint   `json:"workerCount"`
	LocalWorkers     uint   `json:"localWorkers"`
	NonLocalWorkers  uint   `json:"nonLocalWorkers"`
	LocalMaterial    string `json:"localMaterial"`
	NonLocalMaterial string `json:"nonLocalMaterial"`
}

func (m *Monitoring) BeforeSave(_ *gorm.DB) error {
	m.JobName = strings.TrimSpace(m.JobName)
	m.Contractor = strings.TrimSpace(m.Contractor)
	return nil
}

// MonitoringPhoto is a photo documentation record for a monitoring. Only the
// metadata is stored; upload and storage of the image are external.
type MonitoringPhoto struct {
	DefaultModel
	MonitoringID uuid.UUID  `json:"monitoringId"`
	Monitoring   Monitoring `json:"-"`
	URL          string     `json:"url"`
	Caption      string     `json:"caption"`
	TakenAt      *time.Time `json:"takenAt"`
}

// BlankoCategory is a section of the itemized cost breakdown (blanko) of a
// monitoring record.
type BlankoCategory struct {
	DefaultModel
	MonitoringID uuid.UUID       `json:"monitoringId"`
	Monitoring   Monitoring      `json:"-"`
	Name         string          `json:"name"`
	Total        decimal.Decimal `json:"total" gorm:"type:DECIMAL(20,8)"`
}

// BlankoItem is one work item in the itemized cost breakdown.
type BlankoItem struct {
	DefaultModel
	MonitoringID uuid.UUID      `json:"monitoringId"`
	Monitoring   Monitoring     `json:"-"`
	CategoryID   uuid.UUID      `json:"categoryId"`
	Category     BlankoCategory `json:"-"`

	Job       string          `json:"job"`
	Volume    decimal.Decimal `json:"volume" gorm:"type:DECIMAL(20,8)"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unitPrice" gorm:"type:DECIMAL(20,8)"`

	// Total is volume times unit price, recomputed on every write.
	Total decimal.Decimal `json:"total" gorm:"type:DECIMAL(20,8)"`
}

// BeforeSave keeps the stored total consistent with volume and unit price.
func (b *BlankoItem) BeforeSave(_ *gorm.DB) error {
	b.Total = b.Volume.Mul(b.UnitPrice)
	return nil
}

// SaveBlankoItem writes an item and refreshes the total of its category in
// one transaction.
func SaveBlankoItem(db *gorm.DB, item *BlankoItem) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&BlankoCategory{}, item.CategoryID).Error; err != nil {
			return err
		}

		if err := tx.Save(item).Error; err != nil {
			return err
		}

		return refreshBlankoCategoryTotal(tx, item.CategoryID)
	})
}

// DeleteBlankoItem deletes an item and refreshes the total of its category in
// one transaction.
func DeleteBlankoItem(db *gorm.DB, id uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var item BlankoItem
		if err := tx.First(&item, id).Error; err != nil {
			return err
		}

		if err := tx.Delete(&item).Error; err != nil {
			return err
		}

		return refreshBlankoCategoryTotal(tx, item.CategoryID)
	})
}

func refreshBlankoCategoryTotal(tx *gorm.DB, categoryID uuid.UUID) error {
	var total decimal.NullDecimal
	err := tx.Model(&BlankoItem{}).
		Where("category_id = ?", categoryID).
		Select("SUM(total)").
		Scan(&total).Error
	if err != nil {
		return err
	}

	return tx.Model(&BlankoCategory{}).
		Where("id = ?", categoryID).
		Update("total", total.Decimal).Error
}

// DeleteMonitoring deletes a monitoring record together with its photos and
// its cost breakdown in one transaction.
func DeleteMonitoring(db *gorm.DB, id uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var monitoring Monitoring
		if err := tx.First(&monitoring, id).Error; err != nil {
			return err
		}

		if err := tx.Where("monitoring_id = ?", id).Delete(&MonitoringPhoto{}).Error; err != nil {
			return err
		}

		if err := tx.Where("monitoring_id = ?", id).Delete(&BlankoItem{}).Error; err != nil {
			return err
		}

		if err := tx.Where("monitoring_id = ?", id).Delete(&BlankoCategory{}).Error; err != nil {
			return err
		}

		return tx.Delete(&monitoring).Error
	})
}

// DeleteBlankoCategory deletes a category and all its items in one
// transaction.
func DeleteBlankoCategory(db *gorm.DB, id uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var category BlankoCategory
		if err := tx.First(&category, id).Error; err != nil {
			return err
		}

		if err := tx.Where("category_id = ?", id).Delete(&BlankoItem{}).Error; err != nil {
			return err
		}

		return tx.Delete(&category).Error
	})
}
