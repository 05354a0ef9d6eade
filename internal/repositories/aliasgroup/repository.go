package aliasgroup

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
	"github.com/Ramsey-B/fern/pkg/resolver"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// Repository handles alias group persistence
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new alias group repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new alias group
func (r *Repository) Create(ctx context.Context, tenantID string, req models.CreateAliasGroupRequest) (*models.AliasGroup, error) {
	ctx, span := tracing.StartSpan(ctx, "aliasgroup.Repository.Create")
	defer span.End()

	log := r.logger.WithContext(ctx).WithFields(map[string]any{
		"method":      "Create",
		"tenant_id":   tenantID,
		"record_kind": string(req.RecordKind),
		"attribute":   string(req.Attribute),
	})

	if err := req.RecordKind.Validate(); err != nil {
		return nil, httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := req.Attribute.Validate(); err != nil {
		return nil, httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id := uuid.New().String()
	now := time.Now().UTC()

	group := &models.AliasGroup{
		ID:         id,
		TenantID:   tenantID,
		RecordKind: req.RecordKind,
		Attribute:  req.Attribute,
		Aliases:    req.Aliases,
		Priority:   req.Priority,
		IsActive:   req.IsActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("alias_groups")
	sb.Cols("id", "tenant_id", "record_kind", "attribute", "aliases", "priority", "is_active", "created_at", "updated_at")
	sb.Values(group.ID, group.TenantID, group.RecordKind, group.Attribute, group.Aliases, group.Priority, group.IsActive, group.CreatedAt, group.UpdatedAt)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.WithError(err).Error("Failed to create alias group")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create alias group")
	}

	log.WithFields(map[string]any{"id": id}).Info("Created alias group")
	return group, nil
}

// Get retrieves an alias group by ID
func (r *Repository) Get(ctx context.Context, tenantID string, id string) (*models.AliasGroup, error) {
	ctx, span := tracing.StartSpan(ctx, "aliasgroup.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "tenant_id", "record_kind", "attribute", "aliases", "priority", "is_active", "created_at", "updated_at", "deleted_at")
	sb.From("alias_groups")
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("tenant_id", tenantID),
		sb.IsNull("deleted_at"),
	)

	query, args := sb.Build()
	var group models.AliasGroup
	if err := r.db.GetContext(ctx, &group, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("alias group %s not found", id))
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get alias group")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get alias group")
	}

	return &group, nil
}

// ListByKind retrieves all active alias groups for a record kind, ordered by
// priority
func (r *Repository) ListByKind(ctx context.Context, tenantID string, kind models.RecordKind) ([]models.AliasGroup, error) {
	ctx, span := tracing.StartSpan(ctx, "aliasgroup.Repository.ListByKind")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "tenant_id", "record_kind", "attribute", "aliases", "priority", "is_active", "created_at", "updated_at", "deleted_at")
	sb.From("alias_groups")
	sb.Where(
		sb.Equal("tenant_id", tenantID),
		sb.Equal("record_kind", kind),
		sb.Equal("is_active", true),
		sb.IsNull("deleted_at"),
	)
	sb.OrderBy("priority DESC", "created_at ASC")

	query, args := sb.Build()
	var groups []models.AliasGroup
	if err := r.db.SelectContext(ctx, &groups, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list alias groups")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list alias groups")
	}

	return groups, nil
}

// List retrieves all alias groups for a tenant
func (r *Repository) List(ctx context.Context, tenantID string, kind *models.RecordKind, page, pageSize int) ([]models.AliasGroup, int, error) {
	ctx, span := tracing.StartSpan(ctx, "aliasgroup.Repository.List")
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	// Count total
	countSb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	countSb.Select("COUNT(*)")
	countSb.From("alias_groups")
	countWhere := []string{
		countSb.Equal("tenant_id", tenantID),
		countSb.IsNull("deleted_at"),
	}
	if kind != nil {
		countWhere = append(countWhere, countSb.Equal("record_kind", *kind))
	}
	countSb.Where(countWhere...)

	countQuery, countArgs := countSb.Build()
	var totalCount int
	if err := r.db.GetContext(ctx, &totalCount, countQuery, countArgs...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to count alias groups")
		return nil, 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to count alias groups")
	}

	// Fetch page
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "tenant_id", "record_kind", "attribute", "aliases", "priority", "is_active", "created_at", "updated_at", "deleted_at")
	sb.From("alias_groups")
	where := []string{
		sb.Equal("tenant_id", tenantID),
		sb.IsNull("deleted_at"),
	}
	if kind != nil {
		where = append(where, sb.Equal("record_kind", *kind))
	}
	sb.Where(where...)
	sb.OrderBy("priority DESC", "created_at DESC")
	sb.Limit(pageSize).Offset(offset)

	query, args := sb.Build()
	var groups []models.AliasGroup
	if err := r.db.SelectContext(ctx, &groups, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list alias groups")
		return nil, 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list alias groups")
	}

	return groups, totalCount, nil
}

// Update updates an alias group
func (r *Repository) Update(ctx context.Context, tenantID string, id string, req models.UpdateAliasGroupRequest) (*models.AliasGroup, error) {
	ctx, span := tracing.StartSpan(ctx, "aliasgroup.Repository.Update")
	defer span.End()

	existing, err := r.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Aliases != nil {
		existing.Aliases = req.Aliases
	}
	if req.Priority != nil {
		existing.Priority = *req.Priority
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	existing.UpdatedAt = time.Now().UTC()

	sb := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	sb.Update("alias_groups")
	sb.Set(
		sb.Assign("aliases", existing.Aliases),
		sb.Assign("priority", existing.Priority),
		sb.Assign("is_active", existing.IsActive),
		sb.Assign("updated_at", existing.UpdatedAt),
	)
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("tenant_id", tenantID),
	)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to update alias group")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to update alias group")
	}

	return existing, nil
}

// Delete soft deletes an alias group
func (r *Repository) Delete(ctx context.Context, tenantID string, id string) error {
	ctx, span := tracing.StartSpan(ctx, "aliasgroup.Repository.Delete")
	defer span.End()

	now := time.Now().UTC()
	sb := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	sb.Update("alias_groups")
	sb.Set(sb.Assign("deleted_at", now))
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("tenant_id", tenantID),
		sb.IsNull("deleted_at"),
	)

	query, args := sb.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to delete alias group")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete alias group")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("alias group %s not found", id))
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"id": id}).Info("Deleted alias group")
	return nil
}

// TableForKind builds the effective alias table for a tenant. Tenant groups
// overlay the compiled-in defaults per attribute: a group replaces the default
// alias list for its attribute, and higher priority groups contribute their
// aliases first.
func (r *Repository) TableForKind(ctx context.Context, tenantID string, kind models.RecordKind) (resolver.AliasTable, error) {
	ctx, span := tracing.StartSpan(ctx, "aliasgroup.Repository.TableForKind")
	defer span.End()

	table, err := resolver.DefaultTable(kind)
	if err != nil {
		return nil, err
	}

	groups, err := r.ListByKind(ctx, tenantID, kind)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return table, nil
	}

	// ListByKind returns priority DESC, so appending in order keeps the
	// highest priority aliases at the front of each attribute list.
	overlay := make(map[models.Attribute][]string)
	for i := range groups {
		aliases, err := groups[i].AliasList()
		if err != nil {
			r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
				"id": groups[i].ID,
			}).Warn("Skipping alias group with invalid alias list")
			continue
		}
		attr := groups[i].Attribute
		overlay[attr] = append(overlay[attr], aliases...)
	}

	for attr, aliases := range overlay {
		table[attr] = aliases
	}
	return table, nil
}
