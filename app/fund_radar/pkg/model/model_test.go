package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	for _, in := range []string{"kkr", "KKR", " KKR ", "\tKkR\n"} {
		assert.Equal(t, "kkr", NormalizeName(in), "input %q", in)
	}
	assert.Equal(t, "", NormalizeName("   "))
}

func TestReport_Validate(t *testing.T) {
	tests := []struct {
		name    string
		report  *Report
		wantErr bool
	}{
		{name: "nil", report: nil, wantErr: true},
		{name: "missing fund name", report: &Report{FundName: "  "}, wantErr: true},
		{name: "minimal", report: &Report{FundName: "KKR"}},
		{name: "unnamed fund", report: &Report{FundName: "KKR", Funds: []Fund{{Strategy: "credit"}}}, wantErr: true},
		{name: "unnamed member", report: &Report{FundName: "KKR", TeamMembers: []TeamMember{{Position: "CEO"}}}, wantErr: true},
		{name: "deal without company", report: &Report{FundName: "KKR", RecentDeals: []Deal{{Amount: "$1bn"}}}, wantErr: true},
		{
			name: "complete",
			report: &Report{
				FundName:    "KKR",
				Funds:       []Fund{{Name: "Fund I"}},
				TeamMembers: []TeamMember{{Name: "Jane"}},
				RecentDeals: []Deal{{Company: "Acme"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.report.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidReport)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestReport_WireNames(t *testing.T) {
	r := Report{
		FundName:    "KKR & Co. Inc.",
		RecentDeals: []Deal{{Company: "Acme", UseOfProceeds: "refinancing"}},
	}
	data, err := json.Marshal(r)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "KKR & Co. Inc.", raw["fundName"])
	assert.Contains(t, raw, "funds")
	assert.Contains(t, raw, "teamMembers")
	assert.NotContains(t, raw, "website")

	deals := raw["recentDeals"].([]any)
	assert.Equal(t, "refinancing", deals[0].(map[string]any)["use_of_proceeds"])
}
