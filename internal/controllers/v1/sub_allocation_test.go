package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/pesibar-dev/sikera-backend/internal/controllers/v1"
	"github.com/pesibar-dev/sikera-backend/internal/types"
	"github.com/pesibar-dev/sikera-backend/test"
	"github.com/shopspring/decimal"
)

// getTestAllocation re-reads an allocation to observe ledger movements.
func getTestAllocation(suite *TestSuiteStandard, allocation v1.AllocationResponse) v1.AllocationResponse {
	r := test.Request(suite.T(), http.MethodGet, allocation.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AllocationResponse
	test.DecodeResponse(suite.T(), &r, &response)
	return response
}

// Booking a line item moves its amounts from the remaining to the disbursed
// side of the budget document.
func (suite *TestSuiteStandard) TestSubAllocationsCreateBooksAmounts() {
	allocation := createTestAllocation(suite.T(), v1.AllocationEditable{
		TotalAllocated: decimal.NewFromInt(1_000_000_000),
	})

	sub := createTestSubAllocation(suite.T(), v1.SubAllocationEditable{
		AllocationID: allocation.Data.ID,
		Amounts: types.CategoryAmounts{
			Operating: decimal.NewFromInt(100_000_000),
			Capital:   decimal.NewFromInt(250_000_000),
		},
	})

	suite.Assert().True(sub.Data.Total.Equal(decimal.NewFromInt(350_000_000)))

	after := getTestAllocation(suite, allocation)
	suite.Assert().True(after.Data.TotalDisbursed.Equal(decimal.NewFromInt(350_000_000)))
	suite.Assert().True(after.Data.TotalRemaining.Equal(decimal.NewFromInt(650_000_000)))
	suite.Assert().True(after.Data.Disbursed.Capital.Equal(decimal.NewFromInt(250_000_000)))
}

func (suite *TestSuiteStandard) TestSubAllocationsCreateNegativeAmounts() {
	_ = createTestSubAllocation(suite.T(), v1.SubAllocationEditable{
		Amounts: types.CategoryAmounts{
			Operating: decimal.NewFromInt(-1),
		},
	}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestSubAllocationsCreateNonExistingAllocation() {
	allocation := createTestAllocation(suite.T(), v1.AllocationEditable{})

	r := test.Request(suite.T(), http.MethodDelete, allocation.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	_ = createTestSubAllocation(suite.T(), v1.SubAllocationEditable{
		AllocationID: allocation.Data.ID,
	}, http.StatusNotFound)
}

// A booked line item creates the realization record for its sub-activity with
// the amounts as target.
func (suite *TestSuiteStandard) TestSubAllocationsCreateRealization() {
	subActivity := createTestSubActivity(suite.T(), v1.SubActivityEditable{})

	_ = createTestSubAllocation(suite.T(), v1.SubAllocationEditable{
		SubActivityID: subActivity.Data.ID,
		Amounts: types.CategoryAmounts{
			Operating: decimal.NewFromInt(80_000_000),
		},
	})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/realizations?subActivity=%s", subActivity.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var realizations v1.RealizationListResponse
	test.DecodeResponse(suite.T(), &r, &realizations)

	suite.Require().Len(realizations.Data, 1)
	suite.Assert().True(realizations.Data[0].Pagu.Equal(decimal.NewFromInt(80_000_000)))
	suite.Assert().True(realizations.Data[0].Realized.IsZero())
}

// Two line items for the same sub-activity, agency and year merge into one
// realization record.
func (suite *TestSuiteStandard) TestSubAllocationsMergeRealization() {
	allocation := createTestAllocation(suite.T(), v1.AllocationEditable{
		TotalAllocated: decimal.NewFromInt(500_000_000),
	})
	subActivity := createTestSubActivity(suite.T(), v1.SubActivityEditable{})

	for _, amount := range []int64{100_000_000, 60_000_000} {
		_ = createTestSubAllocation(suite.T(), v1.SubAllocationEditable{
			AllocationID:  allocation.Data.ID,
			SubActivityID: subActivity.Data.ID,
			Amounts: types.CategoryAmounts{
				Capital: decimal.NewFromInt(amount),
			},
		})
	}

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/realizations?subActivity=%s", subActivity.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var realizations v1.RealizationListResponse
	test.DecodeResponse(suite.T(), &r, &realizations)

	suite.Require().Len(realizations.Data, 1)
	suite.Assert().True(realizations.Data[0].Pagu.Equal(decimal.NewFromInt(160_000_000)))
	suite.Assert().True(realizations.Data[0].Allocated.Capital.Equal(decimal.NewFromInt(160_000_000)))
}

func (suite *TestSuiteStandard) TestSubAllocationsUpdate() {
	allocation := createTestAllocation(suite.T(), v1.AllocationEditable{
		TotalAllocated: decimal.NewFromInt(1_000_000_000),
	})

	sub := createTestSubAllocation(suite.T(), v1.SubAllocationEditable{
		AllocationID: allocation.Data.ID,
		Location:     "Kecamatan Utara",
		Amounts: types.CategoryAmounts{
			Operating: decimal.NewFromInt(100_000_000),
		},
	})

	update := v1.SubAllocationEditable{
		AllocationID:    sub.Data.AllocationID,
		SubActivityID:   sub.Data.SubActivityID,
		FundingSourceID: sub.Data.FundingSourceID,
		Location:        "Kecamatan Selatan",
		Amounts: types.CategoryAmounts{
			Operating: decimal.NewFromInt(120_000_000),
		},
	}

	r := test.Request(suite.T(), http.MethodPatch, sub.Data.Links.Self, update)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.SubAllocationResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	suite.Assert().Equal("Kecamatan Selatan", updated.Data.Location)
	suite.Assert().True(updated.Data.Total.Equal(decimal.NewFromInt(120_000_000)))
}

// Deleting a line item returns its amounts to the remaining side of the
// budget document. The realization record stays, only the parent booking is
// reversed.
func (suite *TestSuiteStandard) TestSubAllocationsDeleteReversesBooking() {
	allocation := createTestAllocation(suite.T(), v1.AllocationEditable{
		TotalAllocated: decimal.NewFromInt(1_000_000_000),
	})
	subActivity := createTestSubActivity(suite.T(), v1.SubActivityEditable{})

	sub := createTestSubAllocation(suite.T(), v1.SubAllocationEditable{
		AllocationID:  allocation.Data.ID,
		SubActivityID: subActivity.Data.ID,
		Amounts: types.CategoryAmounts{
			Transfer: decimal.NewFromInt(200_000_000),
		},
	})

	r := test.Request(suite.T(), http.MethodDelete, sub.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	after := getTestAllocation(suite, allocation)
	suite.Assert().True(after.Data.TotalDisbursed.IsZero())
	suite.Assert().True(after.Data.TotalRemaining.Equal(decimal.NewFromInt(1_000_000_000)))

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/realizations?subActivity=%s", subActivity.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var realizations v1.RealizationListResponse
	test.DecodeResponse(suite.T(), &r, &realizations)
	suite.Assert().Len(realizations.Data, 1)
}

func (suite *TestSuiteStandard) TestSubAllocationsDeleteNonExisting() {
	r := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1/sub-allocations/e267a3dd-f3ff-436a-9dba-0d5a40250056", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
