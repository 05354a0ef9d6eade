package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/models"
)

func investorTestTable(t *testing.T) AliasTable {
	t.Helper()
	table, err := DefaultTable(models.RecordKindInvestor)
	require.NoError(t, err)
	return table
}

func TestResolve_AliasLookup(t *testing.T) {
	table := investorTestTable(t)

	t.Run("CaseInsensitiveKeys", func(t *testing.T) {
		record := models.RawRecord{
			"Investor_Name": "Acme Ventures",
			"EMAIL":         "hello@acme.vc",
			"Preferred_Stage": "Seed",
		}
		got := Resolve(record, table)
		assert.Equal(t, "Acme Ventures", got.DisplayName)
		assert.Equal(t, "hello@acme.vc", got.Email)
		assert.Equal(t, "Seed", got.Stage)
	})

	t.Run("AliasPriorityOrder", func(t *testing.T) {
		// investor_name outranks firm_name regardless of map order
		record := models.RawRecord{
			"firm_name":     "Wrong Name",
			"investor_name": "Right Name",
		}
		got := Resolve(record, table)
		assert.Equal(t, "Right Name", got.DisplayName)
	})

	t.Run("FocusSplitsCommaSeparatedScalar", func(t *testing.T) {
		record := models.RawRecord{
			"investor_name": "Acme Ventures",
			"focus_sectors": "fintech, saas",
		}
		got := Resolve(record, table)
		assert.Equal(t, []string{"fintech", "saas"}, got.FocusSectors)
	})

	t.Run("FocusKeepsArrayElements", func(t *testing.T) {
		record := models.RawRecord{
			"investor_name": "Acme Ventures",
			"sectors":       []any{"healthcare", "biotech"},
		}
		got := Resolve(record, table)
		assert.Equal(t, []string{"healthcare", "biotech"}, got.FocusSectors)
	})
}

func TestResolve_Heuristics(t *testing.T) {
	table := investorTestTable(t)

	t.Run("PartnerFromEmailLocalPart", func(t *testing.T) {
		record := models.RawRecord{
			"Name":    "Acme Ventures",
			"Contact": "j.doe@acme.vc",
		}
		got := Resolve(record, table)

		assert.Equal(t, "Acme Ventures", got.DisplayName)
		assert.Equal(t, "J Doe", got.PartnerName)
		assert.Equal(t, "j.doe@acme.vc", got.Email)
		assert.Empty(t, got.FocusSectors)
		assert.Equal(t, "", got.Stage)
		assert.Equal(t, models.Unresolved, got.Location)
	})

	t.Run("ExplicitPartnerAliasWinsOverEmail", func(t *testing.T) {
		record := models.RawRecord{
			"investor_name": "Acme Ventures",
			"partner_name":  "Jane Smith",
			"email":         "j.doe@acme.vc",
		}
		got := Resolve(record, table)
		assert.Equal(t, "Jane Smith", got.PartnerName)
	})

	t.Run("SectorsFromFreeText", func(t *testing.T) {
		record := models.RawRecord{
			"investor_name": "Acme Ventures",
			"description":   "We back early fintech and saas companies",
		}
		got := Resolve(record, table)
		assert.Equal(t, []string{"fintech", "saas"}, got.FocusSectors)
	})

	t.Run("StageFromAnyValue", func(t *testing.T) {
		record := models.RawRecord{
			"investor_name": "Acme Ventures",
			"notes":         "typically leads Series A rounds",
		}
		got := Resolve(record, table)
		assert.Equal(t, "Series A", got.Stage)
	})
}

func TestResolve_Location(t *testing.T) {
	table := investorTestTable(t)

	t.Run("ComposedFromComponents", func(t *testing.T) {
		record := models.RawRecord{
			"investor_name": "Acme Ventures",
			"city":          "Boston",
			"state":         "MA",
			"country":       "USA",
		}
		got := Resolve(record, table)
		assert.Equal(t, "Boston, MA, USA", got.Location)
	})

	t.Run("DeduplicatesComponentsAndAliases", func(t *testing.T) {
		record := models.RawRecord{
			"investor_name": "Acme Ventures",
			"city":          "Boston",
			"location":      "Boston, MA",
		}
		got := Resolve(record, table)
		assert.Equal(t, "Boston, MA", got.Location)
	})

	t.Run("SingleAliasValue", func(t *testing.T) {
		record := models.RawRecord{
			"investor_name": "Acme Ventures",
			"hq":            "London",
		}
		got := Resolve(record, table)
		assert.Equal(t, "London", got.Location)
	})
}

func TestResolve_SentinelPolicy(t *testing.T) {
	table := investorTestTable(t)

	t.Run("EmptyRecord", func(t *testing.T) {
		got := Resolve(models.RawRecord{}, table)

		assert.Equal(t, models.Unresolved, got.DisplayName)
		assert.Equal(t, models.Unresolved, got.PartnerName)
		assert.Equal(t, models.Unresolved, got.Email)
		assert.Equal(t, models.Unresolved, got.Location)
		// scored-only fields stay empty rather than carrying the sentinel
		assert.Equal(t, "", got.Stage)
		assert.Equal(t, "", got.TicketSize)
		assert.Empty(t, got.FocusSectors)
	})

	t.Run("BlankValuesTreatedAsMissing", func(t *testing.T) {
		record := models.RawRecord{
			"investor_name": "   ",
			"email":         nil,
		}
		got := Resolve(record, table)
		assert.Equal(t, models.Unresolved, got.DisplayName)
		assert.Equal(t, models.Unresolved, got.Email)
	})
}

func TestResolve_Deterministic(t *testing.T) {
	table := investorTestTable(t)
	record := models.RawRecord{
		"investor_name": "Acme Ventures",
		"description":   "fintech and healthcare, Series A",
		"city":          "Boston",
		"state":         "MA",
		"check_size":    "$250K-$1M",
	}

	first := Resolve(record, table)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Resolve(record, table))
	}
}

func TestDefaultTable(t *testing.T) {
	t.Run("UnknownKind", func(t *testing.T) {
		_, err := DefaultTable(models.RecordKind("charity"))
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrUnknownRecordKind)
	})

	t.Run("CloneIsolation", func(t *testing.T) {
		a, err := DefaultTable(models.RecordKindInvestor)
		require.NoError(t, err)
		b, err := DefaultTable(models.RecordKindInvestor)
		require.NoError(t, err)

		a[models.AttributeName] = []string{"custom"}
		assert.NotEqual(t, a[models.AttributeName], b[models.AttributeName])
	})

	t.Run("IncubatorAliases", func(t *testing.T) {
		table, err := DefaultTable(models.RecordKindIncubator)
		require.NoError(t, err)

		record := models.RawRecord{
			"program_name":    "LaunchPad",
			"program_manager": "Dana Cruz",
			"funding_offered": "$50K",
		}
		got := Resolve(record, table)
		assert.Equal(t, "LaunchPad", got.DisplayName)
		assert.Equal(t, "Dana Cruz", got.PartnerName)
		assert.Equal(t, "$50K", got.TicketSize)
	})
}
