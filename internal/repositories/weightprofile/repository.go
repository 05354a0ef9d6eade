package weightprofile

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/scoring"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

var columns = []string{
	"id", "tenant_id", "name",
	"sector_weight", "stage_weight", "location_weight", "amount_weight",
	"is_default", "created_at", "updated_at", "deleted_at",
}

// Repository handles weight profile persistence
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new weight profile repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new weight profile
func (r *Repository) Create(ctx context.Context, tenantID string, req models.CreateWeightProfileRequest) (*models.WeightProfile, error) {
	ctx, span := tracing.StartSpan(ctx, "weightprofile.Repository.Create")
	defer span.End()

	log := r.logger.WithContext(ctx).WithFields(map[string]any{
		"method":    "Create",
		"tenant_id": tenantID,
		"name":      req.Name,
	})

	weights := scoring.WeightTable{
		Sector:   req.SectorWeight,
		Stage:    req.StageWeight,
		Location: req.LocationWeight,
		Amount:   req.AmountWeight,
	}
	if err := weights.Validate(); err != nil {
		return nil, httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id := uuid.New().String()
	now := time.Now().UTC()

	profile := &models.WeightProfile{
		ID:             id,
		TenantID:       tenantID,
		Name:           req.Name,
		SectorWeight:   req.SectorWeight,
		StageWeight:    req.StageWeight,
		LocationWeight: req.LocationWeight,
		AmountWeight:   req.AmountWeight,
		IsDefault:      req.IsDefault,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if profile.IsDefault {
		if err := r.clearDefault(ctx, tenantID); err != nil {
			return nil, err
		}
	}

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("weight_profiles")
	sb.Cols("id", "tenant_id", "name", "sector_weight", "stage_weight", "location_weight", "amount_weight", "is_default", "created_at", "updated_at")
	sb.Values(profile.ID, profile.TenantID, profile.Name, profile.SectorWeight, profile.StageWeight, profile.LocationWeight, profile.AmountWeight, profile.IsDefault, profile.CreatedAt, profile.UpdatedAt)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.WithError(err).Error("Failed to create weight profile")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create weight profile")
	}

	log.WithFields(map[string]any{"id": id}).Info("Created weight profile")
	return profile, nil
}

// Get retrieves a weight profile by ID
func (r *Repository) Get(ctx context.Context, tenantID string, id string) (*models.WeightProfile, error) {
	ctx, span := tracing.StartSpan(ctx, "weightprofile.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns...)
	sb.From("weight_profiles")
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("tenant_id", tenantID),
		sb.IsNull("deleted_at"),
	)

	query, args := sb.Build()
	var profile models.WeightProfile
	if err := r.db.GetContext(ctx, &profile, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("weight profile %s not found", id))
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get weight profile")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get weight profile")
	}

	return &profile, nil
}

// List retrieves all weight profiles for a tenant
func (r *Repository) List(ctx context.Context, tenantID string) ([]models.WeightProfile, error) {
	ctx, span := tracing.StartSpan(ctx, "weightprofile.Repository.List")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns...)
	sb.From("weight_profiles")
	sb.Where(
		sb.Equal("tenant_id", tenantID),
		sb.IsNull("deleted_at"),
	)
	sb.OrderBy("is_default DESC", "created_at DESC")

	query, args := sb.Build()
	var profiles []models.WeightProfile
	if err := r.db.SelectContext(ctx, &profiles, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list weight profiles")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list weight profiles")
	}

	return profiles, nil
}

// Update updates a weight profile
func (r *Repository) Update(ctx context.Context, tenantID string, id string, req models.UpdateWeightProfileRequest) (*models.WeightProfile, error) {
	ctx, span := tracing.StartSpan(ctx, "weightprofile.Repository.Update")
	defer span.End()

	existing, err := r.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.SectorWeight != nil {
		existing.SectorWeight = *req.SectorWeight
	}
	if req.StageWeight != nil {
		existing.StageWeight = *req.StageWeight
	}
	if req.LocationWeight != nil {
		existing.LocationWeight = *req.LocationWeight
	}
	if req.AmountWeight != nil {
		existing.AmountWeight = *req.AmountWeight
	}
	if req.IsDefault != nil {
		existing.IsDefault = *req.IsDefault
	}
	existing.UpdatedAt = time.Now().UTC()

	weights := scoring.FromProfile(existing)
	if err := weights.Validate(); err != nil {
		return nil, httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.IsDefault != nil && *req.IsDefault {
		if err := r.clearDefault(ctx, tenantID); err != nil {
			return nil, err
		}
	}

	sb := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	sb.Update("weight_profiles")
	sb.Set(
		sb.Assign("name", existing.Name),
		sb.Assign("sector_weight", existing.SectorWeight),
		sb.Assign("stage_weight", existing.StageWeight),
		sb.Assign("location_weight", existing.LocationWeight),
		sb.Assign("amount_weight", existing.AmountWeight),
		sb.Assign("is_default", existing.IsDefault),
		sb.Assign("updated_at", existing.UpdatedAt),
	)
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("tenant_id", tenantID),
	)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to update weight profile")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to update weight profile")
	}

	return existing, nil
}

// Delete soft deletes a weight profile
func (r *Repository) Delete(ctx context.Context, tenantID string, id string) error {
	ctx, span := tracing.StartSpan(ctx, "weightprofile.Repository.Delete")
	defer span.End()

	now := time.Now().UTC()
	sb := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	sb.Update("weight_profiles")
	sb.Set(sb.Assign("deleted_at", now))
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("tenant_id", tenantID),
		sb.IsNull("deleted_at"),
	)

	query, args := sb.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to delete weight profile")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete weight profile")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("weight profile %s not found", id))
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"id": id}).Info("Deleted weight profile")
	return nil
}

// WeightsForTenant returns the tenant's default weight table, or the
// compiled-in defaults when the tenant has none.
func (r *Repository) WeightsForTenant(ctx context.Context, tenantID string) (scoring.WeightTable, error) {
	ctx, span := tracing.StartSpan(ctx, "weightprofile.Repository.WeightsForTenant")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns...)
	sb.From("weight_profiles")
	sb.Where(
		sb.Equal("tenant_id", tenantID),
		sb.Equal("is_default", true),
		sb.IsNull("deleted_at"),
	)
	sb.Limit(1)

	query, args := sb.Build()
	var profile models.WeightProfile
	if err := r.db.GetContext(ctx, &profile, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return scoring.DefaultWeights(), nil
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get default weight profile")
		return scoring.WeightTable{}, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get default weight profile")
	}

	return scoring.FromProfile(&profile), nil
}

// clearDefault unsets is_default on every profile for the tenant so at most
// one default survives.
func (r *Repository) clearDefault(ctx context.Context, tenantID string) error {
	sb := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	sb.Update("weight_profiles")
	sb.Set(
		sb.Assign("is_default", false),
		sb.Assign("updated_at", time.Now().UTC()),
	)
	sb.Where(
		sb.Equal("tenant_id", tenantID),
		sb.Equal("is_default", true),
		sb.IsNull("deleted_at"),
	)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to clear default weight profile")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to update weight profiles")
	}
	return nil
}
