package models

import "fmt"

// RawRecord is one investor, incubator, or client entry exactly as received
// from an upstream source. No schema is guaranteed: values may be strings,
// numbers, booleans, arrays, or nested objects. Records are read-only inputs
// and are never mutated by the engine.
type RawRecord map[string]any

// RecordKind selects which alias tables apply during resolution.
type RecordKind string

const (
	RecordKindInvestor  RecordKind = "investor"
	RecordKindIncubator RecordKind = "incubator"
)

// Validate returns an error for kinds outside the known set. An unknown kind
// is an integration mistake and is surfaced to the caller, unlike data-quality
// issues which are absorbed during resolution.
func (k RecordKind) Validate() error {
	switch k {
	case RecordKindInvestor, RecordKindIncubator:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownRecordKind, string(k))
}

// Attribute identifies a canonical candidate field targeted by resolution.
type Attribute string

const (
	AttributeName     Attribute = "name"
	AttributePartner  Attribute = "partner"
	AttributeEmail    Attribute = "email"
	AttributeFocus    Attribute = "focus"
	AttributeStage    Attribute = "stage"
	AttributeLocation Attribute = "location"
	AttributeTicket   Attribute = "ticket"
)

// Attributes lists every resolvable attribute in resolution order.
func Attributes() []Attribute {
	return []Attribute{
		AttributeName,
		AttributePartner,
		AttributeEmail,
		AttributeFocus,
		AttributeStage,
		AttributeLocation,
		AttributeTicket,
	}
}

// Validate returns an error for attributes outside the known set.
func (a Attribute) Validate() error {
	for _, known := range Attributes() {
		if a == known {
			return nil
		}
	}
	return fmt.Errorf("unknown attribute %q", string(a))
}
