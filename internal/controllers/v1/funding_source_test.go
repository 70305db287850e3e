package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/pesibar-dev/sikera-backend/internal/controllers/v1"
	"github.com/pesibar-dev/sikera-backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestFundingSourcesCRUD() {
	source := createTestFundingSource(suite.T(), v1.FundingSourceEditable{Name: "DAU"})
	suite.Assert().Equal("DAU", source.Data.Name)

	r := test.Request(suite.T(), http.MethodPatch, source.Data.Links.Self, map[string]any{"name": "DAK Fisik"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.FundingSourceResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Assert().Equal("DAK Fisik", updated.Data.Name)

	r = test.Request(suite.T(), http.MethodDelete, source.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, source.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestFundingSourcesGetFiltered() {
	_ = createTestFundingSource(suite.T(), v1.FundingSourceEditable{Name: "DAU"})
	_ = createTestFundingSource(suite.T(), v1.FundingSourceEditable{Name: "DAK Non Fisik"})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"By name", "name=DAK", 1},
		{"All", "", 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/funding-sources?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.FundingSourceListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}
