package models

import "time"

// WeightProfile is a tenant-scoped scorer weight table. At most one profile
// per tenant is the default; when a tenant has none, the compiled-in weights
// apply. Every profile must keep each criterion at or below 40% of the total
// so a single strong match cannot masquerade as a full match.
type WeightProfile struct {
	ID             string     `json:"id" db:"id"`
	TenantID       string     `json:"tenant_id" db:"tenant_id"`
	Name           string     `json:"name" db:"name"`
	SectorWeight   float64    `json:"sector_weight" db:"sector_weight"`
	StageWeight    float64    `json:"stage_weight" db:"stage_weight"`
	LocationWeight float64    `json:"location_weight" db:"location_weight"`
	AmountWeight   float64    `json:"amount_weight" db:"amount_weight"`
	IsDefault      bool       `json:"is_default" db:"is_default"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// CreateWeightProfileRequest is the request to create a weight profile.
type CreateWeightProfileRequest struct {
	Name           string  `json:"name" validate:"required"`
	SectorWeight   float64 `json:"sector_weight" validate:"gt=0"`
	StageWeight    float64 `json:"stage_weight" validate:"gt=0"`
	LocationWeight float64 `json:"location_weight" validate:"gt=0"`
	AmountWeight   float64 `json:"amount_weight" validate:"gt=0"`
	IsDefault      bool    `json:"is_default"`
}

// UpdateWeightProfileRequest is the request to update a weight profile.
type UpdateWeightProfileRequest struct {
	Name           *string  `json:"name,omitempty"`
	SectorWeight   *float64 `json:"sector_weight,omitempty"`
	StageWeight    *float64 `json:"stage_weight,omitempty"`
	LocationWeight *float64 `json:"location_weight,omitempty"`
	AmountWeight   *float64 `json:"amount_weight,omitempty"`
	IsDefault      *bool    `json:"is_default,omitempty"`
}
