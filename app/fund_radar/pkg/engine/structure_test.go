package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/model"
)

func TestExtractJSON(t *testing.T) {
	got, ok := ExtractJSON("Here you go:\n{\"a\": {\"b\": 1}}\nThanks!")
	assert.True(t, ok)
	assert.Equal(t, `{"a": {"b": 1}}`, got)

	_, ok = ExtractJSON("no object here")
	assert.False(t, ok)
	_, ok = ExtractJSON("} backwards {")
	assert.False(t, ok)
}

func TestParseReport_FencedAndPlainAgree(t *testing.T) {
	plain, err := ParseReport(validReportJSON)
	require.NoError(t, err)

	for _, wrapped := range []string{
		"```json\n" + validReportJSON + "\n```",
		"```\n" + validReportJSON + "```",
		"Sure! Here is the report:\n" + validReportJSON + "\nLet me know if you need more.",
	} {
		got, err := ParseReport(wrapped)
		require.NoError(t, err)
		assert.Equal(t, plain, got)
	}

	assert.Equal(t, "Unitranche", plain.RecentDeals[0].DealType)
	assert.Equal(t, "LBO financing", plain.RecentDeals[0].UseOfProceeds)
}

func TestParseReport_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason string
	}{
		{name: "empty", input: "  ", reason: "empty response"},
		{name: "prose", input: "I could not find any information about this fund.", reason: "no JSON object in response"},
		{name: "broken json", input: `{"fundName": "KKR",}`, reason: "invalid JSON"},
		{name: "object as fund name", input: `{"fundName": {"legal": "KKR"}}`, reason: "invalid JSON"},
		{name: "number as fund entry", input: `{"fundName": "KKR", "funds": [42]}`, reason: "invalid JSON"},
		{name: "trailing data", input: `{"fundName": "KKR"}}`, reason: "invalid JSON"},
		{name: "null fund name", input: `{"fundName": null}`, reason: "incomplete report"},
		{name: "two objects", input: `{"fundName": "A"} and {"fundName": "B"}`, reason: "invalid JSON"},
		{name: "missing fund name", input: `{"address": "NYC"}`, reason: "incomplete report"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReport(tt.input)
			var se *StructuringError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.reason, se.Reason)
		})
	}

	_, err := ParseReport(`{"address": "NYC"}`)
	assert.True(t, errors.Is(err, model.ErrInvalidReport))
}

func TestParseReport_LenientScalars(t *testing.T) {
	report, err := ParseReport(`{
  "fundName": "KKR & Co. Inc.",
  "foundedYear": 1976,
  "aum": 553.0,
  "phone": null,
  "funds": [{"name": "KKR Americas XII", "vintageYear": 2017, "fundNumber": 12, "size": "$13.9bn"}],
  "teamMembers": [{"name": "Scott Nuttall", "yearsAtFirm": 28}],
  "recentDeals": [{"company": "Acme", "amount": 450000000, "coInvestors": null}],
  "performanceMetrics": {"numberOfInvestments": 250, "geographicFocus": "North America"}
}`)
	require.NoError(t, err)

	assert.Equal(t, "1976", report.FoundedYear)
	assert.Equal(t, "553.0", report.AUM)
	assert.Empty(t, report.Phone)
	assert.Equal(t, "2017", report.Funds[0].VintageYear)
	assert.Equal(t, "12", report.Funds[0].FundNumber)
	assert.Equal(t, "28", report.TeamMembers[0].YearsAtFirm)
	assert.Equal(t, "450000000", report.RecentDeals[0].Amount)
	assert.Nil(t, report.RecentDeals[0].CoInvestors)
	require.NotNil(t, report.PerformanceMetrics)
	assert.Equal(t, "250", report.PerformanceMetrics.NumberOfInvestments)
	assert.Equal(t, []string{"North America"}, report.PerformanceMetrics.GeographicFocus)
}

func TestParseReport_MissingMarkers(t *testing.T) {
	report, err := ParseReport(`{
  "fundName": "Apollo Global Management",
  "officeLocations": "Not publicly available",
  "funds": "Not publicly available",
  "teamMembers": ["Not publicly available", {"name": "Marc Rowan"}],
  "recentDeals": [],
  "competitiveAnalysis": "Not publicly available",
  "performanceMetrics": {"sectorFocus": "n/a", "totalDeployed": "Not publicly available"}
}`)
	require.NoError(t, err)

	assert.Nil(t, report.OfficeLocations)
	assert.Nil(t, report.Funds)
	require.Len(t, report.TeamMembers, 1)
	assert.Equal(t, "Marc Rowan", report.TeamMembers[0].Name)
	assert.Nil(t, report.CompetitiveAnalysis)
	require.NotNil(t, report.PerformanceMetrics)
	assert.Nil(t, report.PerformanceMetrics.SectorFocus)
	assert.Equal(t, model.NotAvailable, report.PerformanceMetrics.TotalDeployed)
}

func TestStructuringError_Message(t *testing.T) {
	assert.Equal(t, "structuring failed: empty response", (&StructuringError{Reason: "empty response"}).Error())
	err := &StructuringError{Reason: "model call failed", Err: errors.New("401")}
	assert.Equal(t, "structuring failed: model call failed: 401", err.Error())
}
