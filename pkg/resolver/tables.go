package resolver

import "github.com/Ramsey-B/fern/pkg/models"

// AliasTable maps each canonical attribute to its priority-ordered alias
// list. Earlier aliases win over later ones; investor vs. incubator
// resolution differs only by table, never by code path.
type AliasTable map[models.Attribute][]string

// Clone returns a deep copy of the table. Tenant overrides are applied to a
// clone so the compiled-in defaults stay immutable.
func (t AliasTable) Clone() AliasTable {
	out := make(AliasTable, len(t))
	for attr, aliases := range t {
		cp := make([]string, len(aliases))
		copy(cp, aliases)
		out[attr] = cp
	}
	return out
}

var investorTable = AliasTable{
	models.AttributeName:     {"investor_name", "firm_name", "fund_name", "name", "company", "organization"},
	models.AttributePartner:  {"partner_name", "contact_person", "contact_name", "partner"},
	models.AttributeEmail:    {"email", "contact_email", "email_address"},
	models.AttributeFocus:    {"focus_sectors", "sectors", "industries", "investment_focus", "focus"},
	models.AttributeStage:    {"preferred_stage", "investment_stage", "fund_stage", "stage"},
	models.AttributeLocation: {"location", "region", "headquarters", "hq", "address"},
	models.AttributeTicket:   {"ticket_size", "check_size", "investment_range", "typical_check"},
}

var incubatorTable = AliasTable{
	models.AttributeName:     {"incubator_name", "program_name", "accelerator_name", "name", "organization"},
	models.AttributePartner:  {"program_manager", "director", "contact_person", "contact_name"},
	models.AttributeEmail:    {"email", "contact_email", "email_address"},
	models.AttributeFocus:    {"focus_areas", "verticals", "sectors", "industries", "focus"},
	models.AttributeStage:    {"stage_focus", "target_stage", "cohort_stage", "stage"},
	models.AttributeLocation: {"location", "region", "headquarters", "hq", "address"},
	models.AttributeTicket:   {"funding_offered", "investment_amount", "ticket_size"},
}

// locationComponents are the structured location keys collected ahead of the
// table's own location aliases when composing a candidate's location.
var locationComponents = []string{"city", "state", "province", "country"}

// DefaultTable returns the compiled-in alias table for a record kind.
func DefaultTable(kind models.RecordKind) (AliasTable, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	switch kind {
	case models.RecordKindIncubator:
		return incubatorTable.Clone(), nil
	default:
		return investorTable.Clone(), nil
	}
}
