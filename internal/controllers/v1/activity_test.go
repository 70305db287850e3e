package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/pesibar-dev/sikera-backend/internal/controllers/v1"
	"github.com/pesibar-dev/sikera-backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestActivitiesCreate() {
	activity := createTestActivity(suite.T(), v1.ActivityEditable{
		Code: "1.03.10.1.01",
		Name: "Pengelolaan Jalan",
	})

	suite.Assert().Equal("1.03.10.1.01", activity.Data.Code)
	suite.Assert().Equal("Pengelolaan Jalan", activity.Data.Name)
}

func (suite *TestSuiteStandard) TestActivitiesGetFiltered() {
	_ = createTestActivity(suite.T(), v1.ActivityEditable{Code: "1.03.10.1.01", Name: "Pengelolaan Jalan"})
	_ = createTestActivity(suite.T(), v1.ActivityEditable{Code: "1.03.11.1.01", Name: "Pengelolaan Jembatan"})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"By code", "code=1.03.11.1.01", 1},
		{"By name", "name=Jalan", 1},
		{"No match", "code=9.99.99.9.99", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/activities?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.ActivityListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestActivitiesUpdateDelete() {
	activity := createTestActivity(suite.T(), v1.ActivityEditable{Name: "Pengelolaan Irigasi"})

	r := test.Request(suite.T(), http.MethodPatch, activity.Data.Links.Self, map[string]any{"code": "1.03.02.1.02"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.ActivityResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Assert().Equal("1.03.02.1.02", updated.Data.Code)
	suite.Assert().Equal("Pengelolaan Irigasi", updated.Data.Name)

	r = test.Request(suite.T(), http.MethodDelete, activity.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, activity.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
