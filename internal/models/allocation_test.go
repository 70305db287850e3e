package models_test

import (
	"github.com/google/uuid"
	"github.com/pesibar-dev/sikera-backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertDecimalEqual fails the test when the two decimals are not equal in
// value, independent of their exponent.
func (suite *TestSuiteStandard) assertDecimalEqual(expected, actual decimal.Decimal, msgAndArgs ...any) {
	suite.Assert().True(expected.Equal(actual), "decimal values are not equal: expected %s, got %s. %v", expected, actual, msgAndArgs)
}

func (suite *TestSuiteStandard) TestAllocationCreate() {
	agency := suite.createTestAgency(models.Agency{Name: "Dinas Pekerjaan Umum"})

	allocation := models.Allocation{
		Number:         "DPA/A.1/2024",
		AgencyID:       agency.ID,
		Year:           2024,
		TotalAllocated: decimal.NewFromInt(1_000_000),
	}

	err := models.CreateAllocation(models.DB, &allocation)
	require.Nil(suite.T(), err)

	suite.assertDecimalEqual(decimal.NewFromInt(1_000_000), allocation.TotalAllocated)
	suite.assertDecimalEqual(decimal.Zero, allocation.TotalDisbursed)
	suite.assertDecimalEqual(decimal.NewFromInt(1_000_000), allocation.TotalRemaining)

	// Exactly 12 plan entries exist, one per month
	var entries []models.PlanEntry
	err = models.DB.Where(&models.PlanEntry{AllocationID: allocation.ID}).Order("month ASC").Find(&entries).Error
	require.Nil(suite.T(), err)
	require.Len(suite.T(), entries, 12)

	for i, entry := range entries {
		assert.Equal(suite.T(), uint8(i+1), entry.Month)
		assert.True(suite.T(), entry.Amounts.IsZero(), "Plan entry for month %d is not zero-initialized", entry.Month)
	}

	// The fiscal year reference record was created
	var years []models.FiscalYear
	err = models.DB.Where(&models.FiscalYear{Year: 2024}).Find(&years).Error
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), years, 1)
}

func (suite *TestSuiteStandard) TestAllocationCreateFiscalYearOnce() {
	agency := suite.createTestAgency(models.Agency{})

	for i := 0; i < 2; i++ {
		allocation := models.Allocation{AgencyID: agency.ID, Year: 2024, TotalAllocated: decimal.NewFromInt(100)}
		require.Nil(suite.T(), models.CreateAllocation(models.DB, &allocation))
	}

	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.FiscalYear{}).Where("year = ?", 2024).Count(&count).Error)
	assert.Equal(suite.T(), int64(1), count, "A second allocation for the same year must not create a second fiscal year record")
}

func (suite *TestSuiteStandard) TestAllocationCreateNegativeAmount() {
	agency := suite.createTestAgency(models.Agency{})

	allocation := models.Allocation{
		AgencyID:       agency.ID,
		Year:           2024,
		TotalAllocated: decimal.NewFromInt(-1),
	}

	err := models.CreateAllocation(models.DB, &allocation)
	assert.ErrorIs(suite.T(), err, models.ErrAmountNegative)
}

func (suite *TestSuiteStandard) TestAllocationCreateMissingAgency() {
	allocation := models.Allocation{
		AgencyID:       uuid.New(),
		Year:           2024,
		TotalAllocated: decimal.NewFromInt(500),
	}

	err := models.CreateAllocation(models.DB, &allocation)
	require.NotNil(suite.T(), err)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	// Nothing was persisted
	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.Allocation{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count)

	require.Nil(suite.T(), models.DB.Model(&models.PlanEntry{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *TestSuiteStandard) TestAllocationCreateDatabaseClosed() {
	agency := suite.createTestAgency(models.Agency{})
	suite.CloseDB()

	allocation := models.Allocation{AgencyID: agency.ID, Year: 2024, TotalAllocated: decimal.NewFromInt(500)}
	err := models.CreateAllocation(models.DB, &allocation)
	assert.NotNil(suite.T(), err)
}
