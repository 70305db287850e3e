package v1_test

import (
	"net/http"

	v1 "github.com/pesibar-dev/sikera-backend/internal/controllers/v1"
	"github.com/pesibar-dev/sikera-backend/internal/models"
	"github.com/pesibar-dev/sikera-backend/test"
	"github.com/shopspring/decimal"
)

// createTestBlankoCategory adds a section to the cost breakdown.
func createTestBlankoCategory(suite *TestSuiteStandard, monitoring v1.MonitoringResponse, name string) v1.BlankoCategoryResponse {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/blanko-categories", v1.BlankoCategoryEditable{
		MonitoringID: monitoring.Data.ID,
		Name:         name,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.BlankoCategoryResponse
	test.DecodeResponse(suite.T(), &r, &response)
	return response
}

// createTestBlankoItem adds a work item to a section.
func createTestBlankoItem(suite *TestSuiteStandard, category v1.BlankoCategoryResponse, editable v1.BlankoItemEditable) v1.BlankoItemResponse {
	editable.MonitoringID = category.Data.MonitoringID
	editable.CategoryID = category.Data.ID

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/blanko-items", editable)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.BlankoItemResponse
	test.DecodeResponse(suite.T(), &r, &response)
	return response
}

// getTestBlanko fetches the merged cost breakdown of a monitoring record.
func getTestBlanko(suite *TestSuiteStandard, monitoring v1.MonitoringResponse) v1.BlankoObject {
	r := test.Request(suite.T(), http.MethodGet, monitoring.Data.Links.Blanko, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BlankoResponse
	test.DecodeResponse(suite.T(), &r, &response)
	return *response.Data
}

func (suite *TestSuiteStandard) TestBlankoItemTotal() {
	monitoring := createTestMonitoring(suite.T(), v1.MonitoringEditable{})
	category := createTestBlankoCategory(suite, monitoring, "Pekerjaan Persiapan")

	item := createTestBlankoItem(suite, category, v1.BlankoItemEditable{
		Job:       "Mobilisasi",
		Volume:    decimal.NewFromInt(4),
		Unit:      "ls",
		UnitPrice: decimal.NewFromInt(250_000),
	})

	suite.Assert().True(item.Data.Total.Equal(decimal.NewFromInt(1_000_000)))
}

// The merged table numbers sections with Roman numerals and their items from
// 1, separated by spacer rows.
func (suite *TestSuiteStandard) TestBlankoMergedRows() {
	monitoring := createTestMonitoring(suite.T(), v1.MonitoringEditable{})

	first := createTestBlankoCategory(suite, monitoring, "Pekerjaan Persiapan")
	_ = createTestBlankoItem(suite, first, v1.BlankoItemEditable{Job: "Mobilisasi", Volume: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(500_000)})
	_ = createTestBlankoItem(suite, first, v1.BlankoItemEditable{Job: "Direksi keet", Volume: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1_500_000)})

	second := createTestBlankoCategory(suite, monitoring, "Pekerjaan Tanah")
	_ = createTestBlankoItem(suite, second, v1.BlankoItemEditable{Job: "Galian tanah", Volume: decimal.NewFromInt(120), Unit: "m3", UnitPrice: decimal.NewFromInt(50_000)})

	blanko := getTestBlanko(suite, monitoring)

	suite.Require().Len(blanko.Rows, 6)
	suite.Assert().Equal(models.BlankoRowCategory, blanko.Rows[0].Type)
	suite.Assert().Equal("I", blanko.Rows[0].Number)
	suite.Assert().Equal("1", blanko.Rows[1].Number)
	suite.Assert().Equal("2", blanko.Rows[2].Number)
	suite.Assert().Equal(models.BlankoRowSpacer, blanko.Rows[3].Type)
	suite.Assert().Equal("II", blanko.Rows[4].Number)
	suite.Assert().Equal("1", blanko.Rows[5].Number)

	suite.Assert().True(blanko.Rows[0].Total.Equal(decimal.NewFromInt(2_000_000)))
	suite.Assert().True(blanko.Total.Equal(decimal.NewFromInt(8_000_000)))
}

// Changing an item refreshes the stored section total.
func (suite *TestSuiteStandard) TestBlankoItemUpdateRefreshesCategory() {
	monitoring := createTestMonitoring(suite.T(), v1.MonitoringEditable{})
	category := createTestBlankoCategory(suite, monitoring, "Pekerjaan Struktur")

	item := createTestBlankoItem(suite, category, v1.BlankoItemEditable{
		Job:       "Pembesian",
		Volume:    decimal.NewFromInt(10),
		UnitPrice: decimal.NewFromInt(100_000),
	})

	r := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/blanko-items/"+item.Data.ID.String(), map[string]any{
		"volume": "15",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.BlankoItemResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Assert().True(updated.Data.Total.Equal(decimal.NewFromInt(1_500_000)))

	blanko := getTestBlanko(suite, monitoring)
	suite.Assert().True(blanko.Total.Equal(decimal.NewFromInt(1_500_000)))
}

func (suite *TestSuiteStandard) TestBlankoItemDeleteRefreshesCategory() {
	monitoring := createTestMonitoring(suite.T(), v1.MonitoringEditable{})
	category := createTestBlankoCategory(suite, monitoring, "Pekerjaan Atap")

	item := createTestBlankoItem(suite, category, v1.BlankoItemEditable{
		Job:       "Rangka baja ringan",
		Volume:    decimal.NewFromInt(80),
		Unit:      "m2",
		UnitPrice: decimal.NewFromInt(150_000),
	})
	keep := createTestBlankoItem(suite, category, v1.BlankoItemEditable{
		Job:       "Penutup atap",
		Volume:    decimal.NewFromInt(80),
		Unit:      "m2",
		UnitPrice: decimal.NewFromInt(75_000),
	})

	r := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1/blanko-items/"+item.Data.ID.String(), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	blanko := getTestBlanko(suite, monitoring)
	suite.Assert().True(blanko.Total.Equal(keep.Data.Total))
}

// Deleting a section removes its items as well.
func (suite *TestSuiteStandard) TestBlankoCategoryDeleteCascades() {
	monitoring := createTestMonitoring(suite.T(), v1.MonitoringEditable{})
	category := createTestBlankoCategory(suite, monitoring, "Pekerjaan Finishing")

	item := createTestBlankoItem(suite, category, v1.BlankoItemEditable{
		Job:       "Pengecatan",
		Volume:    decimal.NewFromInt(200),
		Unit:      "m2",
		UnitPrice: decimal.NewFromInt(25_000),
	})

	r := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1/blanko-categories/"+category.Data.ID.String(), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodDelete, "http://example.com/v1/blanko-items/"+item.Data.ID.String(), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	blanko := getTestBlanko(suite, monitoring)
	suite.Assert().Len(blanko.Rows, 0)
}

func (suite *TestSuiteStandard) TestBlankoCategoryNonExistingMonitoring() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/blanko-categories", map[string]any{
		"monitoringId": "e267a3dd-f3ff-436a-9dba-0d5a40250056",
		"name":         "Pekerjaan Persiapan",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
