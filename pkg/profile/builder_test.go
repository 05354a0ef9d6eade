package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/fern/pkg/models"
)

func TestBuildProfile(t *testing.T) {
	t.Run("FullRecord", func(t *testing.T) {
		got := BuildProfile(models.RawRecord{
			"industry":       "FinTech",
			"fund_stage":     "Seed",
			"location":       "Boston",
			"investment_ask": "$1M",
		})
		assert.Equal(t, models.ClientProfile{
			Sector:        "FinTech",
			Stage:         "Seed",
			Location:      "Boston",
			FundingAmount: "$1M",
		}, got)
	})

	t.Run("CaseInsensitiveKeys", func(t *testing.T) {
		got := BuildProfile(models.RawRecord{
			"Industry":   "SaaS",
			"Fund_Stage": "Series A",
		})
		assert.Equal(t, "SaaS", got.Sector)
		assert.Equal(t, "Series A", got.Stage)
	})

	t.Run("FirstAliasWins", func(t *testing.T) {
		got := BuildProfile(models.RawRecord{
			"industry": "FinTech",
			"sector":   "Healthcare",
			"location": "Boston",
			"city":     "Cambridge",
		})
		assert.Equal(t, "FinTech", got.Sector)
		assert.Equal(t, "Boston", got.Location)
	})

	t.Run("NoHeuristics", func(t *testing.T) {
		// free text never feeds the profile, unlike candidate resolution
		got := BuildProfile(models.RawRecord{
			"description": "fintech startup raising a seed round in Boston",
		})
		assert.True(t, got.IsEmpty())
	})

	t.Run("EmptyRecord", func(t *testing.T) {
		got := BuildProfile(models.RawRecord{})
		assert.True(t, got.IsEmpty())
		assert.Equal(t, "", got.Sector)
	})
}
