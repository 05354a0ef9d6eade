package models

import (
	"encoding/json"
	"time"
)

// AliasGroup is a tenant-scoped, priority-ordered alias list for one
// attribute of one record kind. Groups are data, not code: resolution walks
// them in priority order, so an earlier alias always wins over a later one.
type AliasGroup struct {
	ID         string          `json:"id" db:"id"`
	TenantID   string          `json:"tenant_id" db:"tenant_id"`
	RecordKind RecordKind      `json:"record_kind" db:"record_kind"`
	Attribute  Attribute       `json:"attribute" db:"attribute"`
	Aliases    json.RawMessage `json:"aliases" db:"aliases"`
	Priority   int             `json:"priority" db:"priority"`
	IsActive   bool            `json:"is_active" db:"is_active"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
	DeletedAt  *time.Time      `json:"deleted_at,omitempty" db:"deleted_at"`
}

// AliasList decodes the stored alias array.
func (g *AliasGroup) AliasList() ([]string, error) {
	var aliases []string
	if err := json.Unmarshal(g.Aliases, &aliases); err != nil {
		return nil, err
	}
	return aliases, nil
}

// CreateAliasGroupRequest is the request to create an alias group.
type CreateAliasGroupRequest struct {
	RecordKind RecordKind      `json:"record_kind" validate:"required"`
	Attribute  Attribute       `json:"attribute" validate:"required"`
	Aliases    json.RawMessage `json:"aliases" validate:"required"`
	Priority   int             `json:"priority"`
	IsActive   bool            `json:"is_active"`
}

// UpdateAliasGroupRequest is the request to update an alias group.
type UpdateAliasGroupRequest struct {
	Aliases  json.RawMessage `json:"aliases,omitempty"`
	Priority *int            `json:"priority,omitempty"`
	IsActive *bool           `json:"is_active,omitempty"`
}
