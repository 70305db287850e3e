package models_test

import (
	"github.com/google/uuid"
	"github.com/pesibar-dev/sikera-backend/internal/models"
	"github.com/pesibar-dev/sikera-backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAmounts(operating, capital, contingency, transfer int64) types.CategoryAmounts {
	return types.CategoryAmounts{
		Operating:   decimal.NewFromInt(operating),
		Capital:     decimal.NewFromInt(capital),
		Contingency: decimal.NewFromInt(contingency),
		Transfer:    decimal.NewFromInt(transfer),
	}
}

// assertCategoryInvariant checks that for every category of the allocation,
// allocated = disbursed + remaining.
func (suite *TestSuiteStandard) assertCategoryInvariant(allocation models.Allocation) {
	suite.assertDecimalEqual(allocation.Allocated.Operating, allocation.Disbursed.Operating.Add(allocation.Remaining.Operating), "operating")
	suite.assertDecimalEqual(allocation.Allocated.Capital, allocation.Disbursed.Capital.Add(allocation.Remaining.Capital), "capital")
	suite.assertDecimalEqual(allocation.Allocated.Contingency, allocation.Disbursed.Contingency.Add(allocation.Remaining.Contingency), "contingency")
	suite.assertDecimalEqual(allocation.Allocated.Transfer, allocation.Disbursed.Transfer.Add(allocation.Remaining.Transfer), "transfer")
	suite.assertDecimalEqual(allocation.TotalRemaining, allocation.TotalAllocated.Sub(allocation.TotalDisbursed), "totals")
}

func (suite *TestSuiteStandard) reloadAllocation(id uuid.UUID) models.Allocation {
	var allocation models.Allocation
	require.Nil(suite.T(), models.DB.First(&allocation, id).Error)
	return allocation
}

// TestSubAllocationLedger walks through the worked example of the ledger:
// a sub-activity allocation is booked against a fresh budget document and
// deleted again, restoring the document to its initial state.
func (suite *TestSuiteStandard) TestSubAllocationLedger() {
	agency := suite.createTestAgency(models.Agency{Name: "Dinas A"})
	allocation := suite.createTestAllocation(models.Allocation{
		AgencyID:       agency.ID,
		Year:           2024,
		TotalAllocated: decimal.NewFromInt(1_000_000),
	})

	subActivity := suite.createTestSubActivity(models.SubActivity{Code: "1.01.01", Name: "Pembangunan jalan"})
	sub := models.SubAllocation{
		AllocationID:  allocation.ID,
		SubActivityID: subActivity.ID,
		Amounts:       testAmounts(100_000, 50_000, 0, 0),
	}
	sub.FundingSourceID = suite.createTestFundingSource(models.FundingSource{}).ID

	require.Nil(suite.T(), models.AddSubAllocation(models.DB, &sub))

	// The stored total is the sum of the categories
	suite.assertDecimalEqual(decimal.NewFromInt(150_000), sub.Total)

	reloaded := suite.reloadAllocation(allocation.ID)
	suite.assertDecimalEqual(decimal.NewFromInt(150_000), reloaded.TotalDisbursed)
	suite.assertDecimalEqual(decimal.NewFromInt(850_000), reloaded.TotalRemaining)
	suite.assertDecimalEqual(decimal.NewFromInt(100_000), reloaded.Disbursed.Operating)
	suite.assertDecimalEqual(decimal.NewFromInt(50_000), reloaded.Disbursed.Capital)
	suite.assertCategoryInvariant(reloaded)

	// The realization record for (sub-activity, agency, year) was created
	var realization models.Realization
	require.Nil(suite.T(), models.DB.Where(&models.Realization{
		SubActivityID: subActivity.ID,
		AgencyID:      agency.ID,
		Year:          2024,
	}).First(&realization).Error)

	suite.assertDecimalEqual(decimal.NewFromInt(150_000), realization.Pagu)
	suite.assertDecimalEqual(decimal.Zero, realization.Realized)
	assert.Equal(suite.T(), models.StatusNotReached, realization.Status)
	assert.True(suite.T(), realization.Allocated.Equal(testAmounts(100_000, 50_000, 0, 0)))
	assert.True(suite.T(), realization.Remaining.Equal(testAmounts(100_000, 50_000, 0, 0)))

	var monthCount int64
	require.Nil(suite.T(), models.DB.Model(&models.RealizationMonth{}).Where("realization_id = ?", realization.ID).Count(&monthCount).Error)
	assert.Equal(suite.T(), int64(12), monthCount)

	// Deleting the sub-allocation restores the parent exactly
	require.Nil(suite.T(), models.DeleteSubAllocation(models.DB, sub.ID))

	restored := suite.reloadAllocation(allocation.ID)
	suite.assertDecimalEqual(decimal.Zero, restored.TotalDisbursed)
	suite.assertDecimalEqual(decimal.NewFromInt(1_000_000), restored.TotalRemaining)
	assert.True(suite.T(), restored.Disbursed.IsZero())
	assert.True(suite.T(), restored.Remaining.IsZero())
	suite.assertCategoryInvariant(restored)

	// The realization merge is deliberately not reversed
	var realizationCount int64
	require.Nil(suite.T(), models.DB.Model(&models.Realization{}).Count(&realizationCount).Error)
	assert.Equal(suite.T(), int64(1), realizationCount)
}

// TestSubAllocationCategoryInvariant verifies that any sequence of adds and
// deletes keeps allocated = disbursed + remaining for every category.
func (suite *TestSuiteStandard) TestSubAllocationCategoryInvariant() {
	allocation := suite.createTestAllocation(models.Allocation{Year: 2024, TotalAllocated: decimal.NewFromInt(10_000_000)})

	subs := make([]models.SubAllocation, 0, 3)
	for _, amounts := range []types.CategoryAmounts{
		testAmounts(1, 2, 3, 4),
		testAmounts(100_000, 0, 0, 0),
		testAmounts(0, 250_000, 125_000, 75_000),
	} {
		sub := suite.createTestSubAllocation(models.SubAllocation{AllocationID: allocation.ID, Amounts: amounts})
		subs = append(subs, sub)
		suite.assertCategoryInvariant(suite.reloadAllocation(allocation.ID))
	}

	require.Nil(suite.T(), models.DeleteSubAllocation(models.DB, subs[1].ID))
	suite.assertCategoryInvariant(suite.reloadAllocation(allocation.ID))

	require.Nil(suite.T(), models.DeleteSubAllocation(models.DB, subs[0].ID))
	reloaded := suite.reloadAllocation(allocation.ID)
	suite.assertCategoryInvariant(reloaded)
	suite.assertDecimalEqual(decimal.NewFromInt(450_000), reloaded.TotalDisbursed)
}

// TestSubAllocationRealizationMerge verifies that a second sub-allocation for
// the same (sub-activity, agency, year) triple merges into the existing
// realization record instead of creating a duplicate.
func (suite *TestSuiteStandard) TestSubAllocationRealizationMerge() {
	agency := suite.createTestAgency(models.Agency{})
	allocation := suite.createTestAllocation(models.Allocation{AgencyID: agency.ID, Year: 2024, TotalAllocated: decimal.NewFromInt(5_000_000)})
	subActivity := suite.createTestSubActivity(models.SubActivity{})
	source := suite.createTestFundingSource(models.FundingSource{})

	first := models.SubAllocation{
		AllocationID:    allocation.ID,
		SubActivityID:   subActivity.ID,
		FundingSourceID: source.ID,
		Amounts:         testAmounts(100, 200, 0, 0),
	}
	require.Nil(suite.T(), models.AddSubAllocation(models.DB, &first))

	second := models.SubAllocation{
		AllocationID:    allocation.ID,
		SubActivityID:   subActivity.ID,
		FundingSourceID: source.ID,
		Amounts:         testAmounts(50, 0, 25, 0),
	}
	require.Nil(suite.T(), models.AddSubAllocation(models.DB, &second))

	var realizations []models.Realization
	require.Nil(suite.T(), models.DB.Find(&realizations).Error)
	require.Len(suite.T(), realizations, 1, "A second add for the same triple must merge, not duplicate")

	realization := realizations[0]
	suite.assertDecimalEqual(decimal.NewFromInt(375), realization.Pagu)
	assert.True(suite.T(), realization.Allocated.Equal(testAmounts(150, 200, 25, 0)))

	// Still exactly twelve months
	var monthCount int64
	require.Nil(suite.T(), models.DB.Model(&models.RealizationMonth{}).Where("realization_id = ?", realization.ID).Count(&monthCount).Error)
	assert.Equal(suite.T(), int64(12), monthCount)
}

func (suite *TestSuiteStandard) TestSubAllocationNegativeAmount() {
	allocation := suite.createTestAllocation(models.Allocation{Year: 2024, TotalAllocated: decimal.NewFromInt(100)})

	sub := models.SubAllocation{
		AllocationID: allocation.ID,
		Amounts:      testAmounts(-1, 0, 0, 0),
	}

	err := models.AddSubAllocation(models.DB, &sub)
	assert.ErrorIs(suite.T(), err, models.ErrAmountNegative)
}

// TestSubAllocationRollback verifies that a failing write inside the
// transaction leaves no partial state behind.
func (suite *TestSuiteStandard) TestSubAllocationRollback() {
	allocation := suite.createTestAllocation(models.Allocation{Year: 2024, TotalAllocated: decimal.NewFromInt(1_000)})

	// The sub-activity reference does not exist, so the insert violates the
	// foreign key and the whole transaction must roll back.
	sub := models.SubAllocation{
		AllocationID:    allocation.ID,
		SubActivityID:   uuid.New(),
		FundingSourceID: suite.createTestFundingSource(models.FundingSource{}).ID,
		Amounts:         testAmounts(10, 0, 0, 0),
	}

	err := models.AddSubAllocation(models.DB, &sub)
	require.NotNil(suite.T(), err)

	var subCount, realizationCount int64
	require.Nil(suite.T(), models.DB.Model(&models.SubAllocation{}).Count(&subCount).Error)
	assert.Equal(suite.T(), int64(0), subCount)
	require.Nil(suite.T(), models.DB.Model(&models.Realization{}).Count(&realizationCount).Error)
	assert.Equal(suite.T(), int64(0), realizationCount)

	reloaded := suite.reloadAllocation(allocation.ID)
	suite.assertDecimalEqual(decimal.Zero, reloaded.TotalDisbursed)
	suite.assertDecimalEqual(decimal.NewFromInt(1_000), reloaded.TotalRemaining)
}

func (suite *TestSuiteStandard) TestSubAllocationUpdateBooksNewAmounts() {
	agency := suite.createTestAgency(models.Agency{})
	allocation := suite.createTestAllocation(models.Allocation{AgencyID: agency.ID, Year: 2024, TotalAllocated: decimal.NewFromInt(1_000_000)})
	sub := suite.createTestSubAllocation(models.SubAllocation{AllocationID: allocation.ID, Amounts: testAmounts(100, 0, 0, 0)})

	updated := sub
	updated.Amounts = testAmounts(0, 300, 0, 0)
	require.Nil(suite.T(), models.UpdateSubAllocation(models.DB, sub.ID, updated))

	var reloadedSub models.SubAllocation
	require.Nil(suite.T(), models.DB.First(&reloadedSub, sub.ID).Error)
	suite.assertDecimalEqual(decimal.NewFromInt(300), reloadedSub.Total)

	// The new amounts are booked on top of the previous ones; the previous
	// contribution is not reversed. This mirrors the established ledger
	// behavior.
	reloaded := suite.reloadAllocation(allocation.ID)
	suite.assertDecimalEqual(decimal.NewFromInt(400), reloaded.TotalDisbursed)
	suite.assertCategoryInvariant(reloaded)
}
