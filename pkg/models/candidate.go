package models

// Unresolved is the display sentinel for an attribute no alias or heuristic
// could produce. The scorer treats it exactly like the empty string.
const Unresolved = "—"

// ResolvedCandidate is the derived, read-only view of a RawRecord after field
// resolution. Resolution is a pure function of the record: resolving the same
// record twice yields identical output, which is what makes re-ranking on
// filter toggles stable.
type ResolvedCandidate struct {
	DisplayName  string   `json:"display_name"`
	PartnerName  string   `json:"partner_name"`
	Email        string   `json:"email"`
	FocusSectors []string `json:"focus_sectors"`
	Stage        string   `json:"stage"`
	Location     string   `json:"location"`
	TicketSize   string   `json:"ticket_size"`
}

// IsAbsent reports whether a resolved field value carries no scorable
// content (empty or the display sentinel).
func IsAbsent(value string) bool {
	return value == "" || value == Unresolved
}
