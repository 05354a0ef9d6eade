package match

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	appctx "github.com/Ramsey-B/fern/pkg/context"
	"github.com/Ramsey-B/fern/pkg/matching"
	"github.com/Ramsey-B/fern/pkg/models"
)

// Register registers match routes
func Register(g *echo.Group) {
	g.POST("", MatchBatch)
	g.POST("/resolve", ResolveBatch)
}

// MatchBatchRequest is the request body for matching a batch of records
type MatchBatchRequest struct {
	Kind         models.RecordKind     `json:"record_kind" validate:"required"`
	Profile      *models.ClientProfile `json:"profile,omitempty"`
	ClientRecord models.RawRecord      `json:"client_record,omitempty"`
	Records      []models.RawRecord    `json:"records" validate:"required"`
	Filters      map[string]bool       `json:"filters,omitempty"`
}

// MatchBatchResponse is the ranked result of a batch match
type MatchBatchResponse struct {
	Results []models.RankedEntryView `json:"results"`
	Count   int                      `json:"count"`
}

// MatchBatch resolves, scores, and ranks a batch of candidate records
func MatchBatch(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID := appctx.GetTenantID(ctx)

	var req MatchBatchRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if req.Profile == nil && req.ClientRecord == nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "profile or client_record is required")
	}

	ctx, engine, err := ectoinject.GetContext[*matching.Engine](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	ranked, err := engine.Match(ctx, tenantID, matching.MatchRequest{
		Profile:      req.Profile,
		ClientRecord: req.ClientRecord,
		Kind:         req.Kind,
		Records:      req.Records,
		Filters:      req.Filters,
	})
	if err != nil {
		if models.IsContractError(err) {
			return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	return c.JSON(http.StatusOK, MatchBatchResponse{
		Results: models.NewRankedEntryViews(ranked),
		Count:   len(ranked),
	})
}

// ResolveBatchRequest is the request body for resolving records without
// scoring them
type ResolveBatchRequest struct {
	Kind    models.RecordKind  `json:"record_kind" validate:"required"`
	Records []models.RawRecord `json:"records" validate:"required"`
}

// ResolveBatchResponse holds the normalized view of each record
type ResolveBatchResponse struct {
	Candidates []models.ResolvedCandidate `json:"candidates"`
	Count      int                        `json:"count"`
}

// ResolveBatch returns the normalized view of each record, for previewing
// how raw records resolve before matching
func ResolveBatch(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID := appctx.GetTenantID(ctx)

	var req ResolveBatchRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx, engine, err := ectoinject.GetContext[*matching.Engine](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	candidates, err := engine.ResolveAll(ctx, tenantID, req.Kind, req.Records)
	if err != nil {
		if models.IsContractError(err) {
			return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	return c.JSON(http.StatusOK, ResolveBatchResponse{
		Candidates: candidates,
		Count:      len(candidates),
	})
}
