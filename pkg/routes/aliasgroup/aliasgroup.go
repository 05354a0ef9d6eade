package aliasgroup

import (
	"net/http"
	"strconv"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/internal/repositories/aliasgroup"
	appctx "github.com/Ramsey-B/fern/pkg/context"
	"github.com/Ramsey-B/fern/pkg/models"
)

var validate = validator.New()

// Register registers alias group routes
func Register(g *echo.Group) {
	g.GET("", ListAliasGroups)
	g.GET("/:id", GetAliasGroup)
	g.POST("", CreateAliasGroup)
	g.PUT("/:id", UpdateAliasGroup)
	g.DELETE("/:id", DeleteAliasGroup)
}

// ListAliasGroupsResponse is a page of alias groups
type ListAliasGroupsResponse struct {
	Groups     []models.AliasGroup `json:"groups"`
	TotalCount int                 `json:"total_count"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
}

// ListAliasGroups lists alias groups, optionally filtered by record kind
func ListAliasGroups(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID := appctx.GetTenantID(ctx)

	var kind *models.RecordKind
	if raw := c.QueryParam("record_kind"); raw != "" {
		k := models.RecordKind(raw)
		if err := k.Validate(); err != nil {
			return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		kind = &k
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))

	ctx, repo, err := ectoinject.GetContext[*aliasgroup.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	groups, total, err := repo.List(ctx, tenantID, kind, page, pageSize)
	if err != nil {
		return err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return c.JSON(http.StatusOK, ListAliasGroupsResponse{
		Groups:     groups,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	})
}

// GetAliasGroup gets an alias group by ID
func GetAliasGroup(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID := appctx.GetTenantID(ctx)

	id := c.Param("id")

	ctx, repo, err := ectoinject.GetContext[*aliasgroup.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	group, err := repo.Get(ctx, tenantID, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, group)
}

// CreateAliasGroup creates a new alias group
func CreateAliasGroup(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID := appctx.GetTenantID(ctx)

	var req models.CreateAliasGroupRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, repo, err := ectoinject.GetContext[*aliasgroup.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	created, err := repo.Create(ctx, tenantID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

// UpdateAliasGroup updates an alias group
func UpdateAliasGroup(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID := appctx.GetTenantID(ctx)

	id := c.Param("id")

	var req models.UpdateAliasGroupRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx, repo, err := ectoinject.GetContext[*aliasgroup.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	updated, err := repo.Update(ctx, tenantID, id, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteAliasGroup deletes an alias group
func DeleteAliasGroup(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID := appctx.GetTenantID(ctx)

	id := c.Param("id")

	ctx, repo, err := ectoinject.GetContext[*aliasgroup.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	if err := repo.Delete(ctx, tenantID, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
