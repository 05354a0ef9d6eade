package weightprofile

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/internal/repositories/weightprofile"
	appctx "github.com/Ramsey-B/fern/pkg/context"
	"github.com/Ramsey-B/fern/pkg/models"
)

var validate = validator.New()

// Register registers weight profile routes
func Register(g *echo.Group) {
	g.GET("", ListWeightProfiles)
	g.GET("/:id", GetWeightProfile)
	g.POST("", CreateWeightProfile)
	g.PUT("/:id", UpdateWeightProfile)
	g.DELETE("/:id", DeleteWeightProfile)
}

// ListWeightProfiles lists all weight profiles for the tenant
func ListWeightProfiles(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID := appctx.GetTenantID(ctx)

	ctx, repo, err := ectoinject.GetContext[*weightprofile.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	profiles, err := repo.List(ctx, tenantID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profiles)
}

// GetWeightProfile gets a weight profile by ID
func GetWeightProfile(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID := appctx.GetTenantID(ctx)

	id := c.Param("id")

	ctx, repo, err := ectoinject.GetContext[*weightprofile.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	profile, err := repo.Get(ctx, tenantID, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profile)
}

// CreateWeightProfile creates a new weight profile
func CreateWeightProfile(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID := appctx.GetTenantID(ctx)

	var req models.CreateWeightProfileRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, repo, err := ectoinject.GetContext[*weightprofile.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	created, err := repo.Create(ctx, tenantID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

// UpdateWeightProfile updates a weight profile
func UpdateWeightProfile(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID := appctx.GetTenantID(ctx)

	id := c.Param("id")

	var req models.UpdateWeightProfileRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx, repo, err := ectoinject.GetContext[*weightprofile.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	updated, err := repo.Update(ctx, tenantID, id, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteWeightProfile deletes a weight profile
func DeleteWeightProfile(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID := appctx.GetTenantID(ctx)

	id := c.Param("id")

	ctx, repo, err := ectoinject.GetContext[*weightprofile.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	if err := repo.Delete(ctx, tenantID, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
