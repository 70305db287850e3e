package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/pesibar-dev/sikera-backend/internal/controllers/v1"
	"github.com/pesibar-dev/sikera-backend/test"
)

func (suite *TestSuiteStandard) TestSubActivitiesCreate() {
	activity := createTestActivity(suite.T(), v1.ActivityEditable{})

	subActivity := createTestSubActivity(suite.T(), v1.SubActivityEditable{
		Code:       "1.03.10.1.01.02",
		Name:       "Rehabilitasi Jalan",
		ActivityID: activity.Data.ID,
	})

	suite.Assert().Equal("1.03.10.1.01.02", subActivity.Data.Code)
	suite.Assert().Equal(activity.Data.ID, subActivity.Data.ActivityID)
}

func (suite *TestSuiteStandard) TestSubActivitiesGetFilteredByActivity() {
	activity := createTestActivity(suite.T(), v1.ActivityEditable{})
	other := createTestActivity(suite.T(), v1.ActivityEditable{})

	_ = createTestSubActivity(suite.T(), v1.SubActivityEditable{ActivityID: activity.Data.ID})
	_ = createTestSubActivity(suite.T(), v1.SubActivityEditable{ActivityID: activity.Data.ID})
	_ = createTestSubActivity(suite.T(), v1.SubActivityEditable{ActivityID: other.Data.ID})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/sub-activities?activity=%s", activity.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SubActivityListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data, 2)
}

func (suite *TestSuiteStandard) TestSubActivitiesInvalidActivityFilter() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/sub-activities?activity=NotAUUID", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestSubActivitiesUpdateDelete() {
	subActivity := createTestSubActivity(suite.T(), v1.SubActivityEditable{Name: "Pembangunan Jembatan"})

	r := test.Request(suite.T(), http.MethodPatch, subActivity.Data.Links.Self, map[string]any{"name": "Rehabilitasi Jembatan"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.SubActivityResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Assert().Equal("Rehabilitasi Jembatan", updated.Data.Name)

	r = test.Request(suite.T(), http.MethodDelete, subActivity.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}
