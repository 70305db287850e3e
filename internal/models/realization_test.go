package models_test

import (
	"github.com/google/uuid"
	"github.com/pesibar-dev/sikera-backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) realizationFor(sub models.SubAllocation) models.Realization {
	var allocation models.Allocation
	require.Nil(suite.T(), models.DB.First(&allocation, sub.AllocationID).Error)

	var realization models.Realization
	require.Nil(suite.T(), models.DB.Where(&models.Realization{
		SubActivityID: sub.SubActivityID,
		AgencyID:      allocation.AgencyID,
		Year:          allocation.Year,
	}).First(&realization).Error)

	return realization
}

func (suite *TestSuiteStandard) realizationMonth(realizationID uuid.UUID, month uint8) models.RealizationMonth {
	var entry models.RealizationMonth
	require.Nil(suite.T(), models.DB.Where(&models.RealizationMonth{RealizationID: realizationID, Month: month}).First(&entry).Error)
	return entry
}

// TestRecordMonthlyRealization verifies the delta rule: editing a month twice
// applies new minus previous to the parent's cumulative fields, not the
// absolute values.
func (suite *TestSuiteStandard) TestRecordMonthlyRealization() {
	allocation := suite.createTestAllocation(models.Allocation{Year: 2024, TotalAllocated: decimal.NewFromInt(1_000_000)})
	sub := suite.createTestSubAllocation(models.SubAllocation{AllocationID: allocation.ID, Amounts: testAmounts(100_000, 50_000, 0, 0)})

	realization := suite.realizationFor(sub)
	march := suite.realizationMonth(realization.ID, 3)

	require.Nil(suite.T(), models.RecordMonthlyRealization(models.DB, march.ID, testAmounts(10_000, 5_000, 0, 0), "termin I"))

	reloaded := suite.realizationFor(sub)
	suite.assertDecimalEqual(decimal.NewFromInt(15_000), reloaded.Realized)
	assert.True(suite.T(), reloaded.RealizedAmounts.Equal(testAmounts(10_000, 5_000, 0, 0)))
	assert.True(suite.T(), reloaded.Remaining.Equal(testAmounts(90_000, 45_000, 0, 0)))

	// Correcting the same month applies the delta, not the absolute amount
	require.Nil(suite.T(), models.RecordMonthlyRealization(models.DB, march.ID, testAmounts(8_000, 5_000, 0, 0), "termin I (koreksi)"))

	reloaded = suite.realizationFor(sub)
	suite.assertDecimalEqual(decimal.NewFromInt(13_000), reloaded.Realized)
	assert.True(suite.T(), reloaded.RealizedAmounts.Equal(testAmounts(8_000, 5_000, 0, 0)))
	assert.True(suite.T(), reloaded.Remaining.Equal(testAmounts(92_000, 45_000, 0, 0)))

	monthReloaded := suite.realizationMonth(realization.ID, 3)
	assert.Equal(suite.T(), "termin I (koreksi)", monthReloaded.Note)
}

// TestRecordMonthlyRealizationIndependentMonths verifies that two months
// contribute independently to the shared running total.
func (suite *TestSuiteStandard) TestRecordMonthlyRealizationIndependentMonths() {
	allocation := suite.createTestAllocation(models.Allocation{Year: 2024, TotalAllocated: decimal.NewFromInt(1_000_000)})
	sub := suite.createTestSubAllocation(models.SubAllocation{AllocationID: allocation.ID, Amounts: testAmounts(100_000, 0, 0, 0)})

	realization := suite.realizationFor(sub)

	require.Nil(suite.T(), models.RecordMonthlyRealization(models.DB, suite.realizationMonth(realization.ID, 1).ID, testAmounts(10_000, 0, 0, 0), ""))
	require.Nil(suite.T(), models.RecordMonthlyRealization(models.DB, suite.realizationMonth(realization.ID, 2).ID, testAmounts(20_000, 0, 0, 0), ""))

	reloaded := suite.realizationFor(sub)
	suite.assertDecimalEqual(decimal.NewFromInt(30_000), reloaded.Realized)

	// Re-editing January must not disturb February's contribution
	require.Nil(suite.T(), models.RecordMonthlyRealization(models.DB, suite.realizationMonth(realization.ID, 1).ID, testAmounts(15_000, 0, 0, 0), ""))

	reloaded = suite.realizationFor(sub)
	suite.assertDecimalEqual(decimal.NewFromInt(35_000), reloaded.Realized)
}

func (suite *TestSuiteStandard) TestRecordMonthlyRealizationStatus() {
	allocation := suite.createTestAllocation(models.Allocation{Year: 2024, TotalAllocated: decimal.NewFromInt(1_000_000)})
	sub := suite.createTestSubAllocation(models.SubAllocation{AllocationID: allocation.ID, Amounts: testAmounts(10_000, 0, 0, 0)})

	realization := suite.realizationFor(sub)
	assert.Equal(suite.T(), models.StatusNotReached, realization.Status)

	require.Nil(suite.T(), models.RecordMonthlyRealization(models.DB, suite.realizationMonth(realization.ID, 6).ID, testAmounts(10_000, 0, 0, 0), ""))
	assert.Equal(suite.T(), models.StatusReached, suite.realizationFor(sub).Status)

	require.Nil(suite.T(), models.RecordMonthlyRealization(models.DB, suite.realizationMonth(realization.ID, 6).ID, testAmounts(9_999, 0, 0, 0), ""))
	assert.Equal(suite.T(), models.StatusNotReached, suite.realizationFor(sub).Status)
}

// TestRecordMonthlyRealizationNotFound verifies that a missing monthly entry
// is an explicit error, not a silent no-op.
func (suite *TestSuiteStandard) TestRecordMonthlyRealizationNotFound() {
	err := models.RecordMonthlyRealization(models.DB, uuid.New(), testAmounts(1, 0, 0, 0), "")
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestRecordMonthlyRealizationNegative() {
	err := models.RecordMonthlyRealization(models.DB, uuid.New(), testAmounts(0, -1, 0, 0), "")
	assert.ErrorIs(suite.T(), err, models.ErrAmountNegative)
}
