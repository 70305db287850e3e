package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/pesibar-dev/sikera-backend/internal/controllers/v1"
	"github.com/pesibar-dev/sikera-backend/internal/types"
	"github.com/pesibar-dev/sikera-backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestAllocationsOptions() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Does not exist", "e267a3dd-f3ff-436a-9dba-0d5a40250056", http.StatusNotFound},
		{"Invalid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Success", "", http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("http://example.com/v1/allocations/%s", tt.id)

			if tt.id == "" {
				allocation := createTestAllocation(t, v1.AllocationEditable{})
				path = allocation.Data.Links.Self
			}

			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestAllocationsCreate() {
	agency := createTestAgency(suite.T(), v1.AgencyEditable{})

	allocation := createTestAllocation(suite.T(), v1.AllocationEditable{
		Number:         "DPA/A.1/1.03.0.00.0.00.01.0000/001/2024",
		AgencyID:       agency.Data.ID,
		Year:           2024,
		TotalAllocated: decimal.NewFromInt(1_500_000_000),
	})

	suite.Assert().Equal("DPA/A.1/1.03.0.00.0.00.01.0000/001/2024", allocation.Data.Number)
	suite.Assert().True(allocation.Data.TotalAllocated.Equal(decimal.NewFromInt(1_500_000_000)))
	suite.Assert().True(allocation.Data.TotalDisbursed.IsZero())
	suite.Assert().True(allocation.Data.TotalRemaining.Equal(decimal.NewFromInt(1_500_000_000)))
}

// Creating an allocation initializes all twelve months of the disbursement
// plan with zero amounts.
func (suite *TestSuiteStandard) TestAllocationsCreateInitializesPlan() {
	allocation := createTestAllocation(suite.T(), v1.AllocationEditable{})

	r := test.Request(suite.T(), http.MethodGet, allocation.Data.Links.Plan, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var plan v1.PlanResponse
	test.DecodeResponse(suite.T(), &r, &plan)

	suite.Require().Len(plan.Data.Entries, 12)
	for i, entry := range plan.Data.Entries {
		suite.Assert().Equal(uint8(i+1), entry.Month)
		suite.Assert().True(entry.Total.IsZero())
	}
}

func (suite *TestSuiteStandard) TestAllocationsCreateNegativeTotal() {
	_ = createTestAllocation(suite.T(), v1.AllocationEditable{
		TotalAllocated: decimal.NewFromInt(-1),
	}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestAllocationsCreateNonExistingAgency() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/allocations", map[string]any{
		"agencyId": "e267a3dd-f3ff-436a-9dba-0d5a40250056",
		"year":     2024,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestAllocationsGetFiltered() {
	agency := createTestAgency(suite.T(), v1.AgencyEditable{})

	_ = createTestAllocation(suite.T(), v1.AllocationEditable{AgencyID: agency.Data.ID, Year: 2024, Number: "DPA/001"})
	_ = createTestAllocation(suite.T(), v1.AllocationEditable{AgencyID: agency.Data.ID, Year: 2023, Number: "DPA/002"})
	_ = createTestAllocation(suite.T(), v1.AllocationEditable{Year: 2024, Number: "DPPA/001"})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"By agency", fmt.Sprintf("agency=%s", agency.Data.ID), 2},
		{"By year", "year=2024", 2},
		{"By number", "number=DPPA", 1},
		{"Agency and year", fmt.Sprintf("agency=%s&year=2023", agency.Data.ID), 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/allocations?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.AllocationListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

// A document revision raises or lowers the allocated total. The remainder
// follows so that remaining = allocated - disbursed stays true.
func (suite *TestSuiteStandard) TestAllocationsUpdateTotalRecomputesRemainder() {
	allocation := createTestAllocation(suite.T(), v1.AllocationEditable{
		TotalAllocated: decimal.NewFromInt(1_000_000_000),
	})

	sub := createTestSubAllocation(suite.T(), v1.SubAllocationEditable{
		AllocationID: allocation.Data.ID,
		Amounts: types.CategoryAmounts{
			Operating: decimal.NewFromInt(400_000_000),
		},
	})
	suite.Require().NotNil(sub.Data)

	r := test.Request(suite.T(), http.MethodPatch, allocation.Data.Links.Self, map[string]any{
		"totalAllocated": "1200000000",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodGet, allocation.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.AllocationResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	suite.Assert().True(updated.Data.TotalAllocated.Equal(decimal.NewFromInt(1_200_000_000)))
	suite.Assert().True(updated.Data.TotalDisbursed.Equal(decimal.NewFromInt(400_000_000)))
	suite.Assert().True(updated.Data.TotalRemaining.Equal(decimal.NewFromInt(800_000_000)))
}

func (suite *TestSuiteStandard) TestAllocationsUpdateNegativeTotal() {
	allocation := createTestAllocation(suite.T(), v1.AllocationEditable{})

	r := test.Request(suite.T(), http.MethodPatch, allocation.Data.Links.Self, map[string]any{
		"totalAllocated": "-1",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// Allocations with booked line items can not be deleted, the line items have
// to go first.
func (suite *TestSuiteStandard) TestAllocationsDeleteWithSubAllocations() {
	allocation := createTestAllocation(suite.T(), v1.AllocationEditable{})

	sub := createTestSubAllocation(suite.T(), v1.SubAllocationEditable{
		AllocationID: allocation.Data.ID,
		Amounts: types.CategoryAmounts{
			Capital: decimal.NewFromInt(50_000_000),
		},
	})

	r := test.Request(suite.T(), http.MethodDelete, allocation.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodDelete, sub.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodDelete, allocation.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestAllocationsDeleteRemovesPlan() {
	allocation := createTestAllocation(suite.T(), v1.AllocationEditable{})

	r := test.Request(suite.T(), http.MethodDelete, allocation.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, allocation.Data.Links.Plan, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestAllocationsDeleteNonExisting() {
	r := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1/allocations/e267a3dd-f3ff-436a-9dba-0d5a40250056", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
