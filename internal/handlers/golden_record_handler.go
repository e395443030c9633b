package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "secmaster/internal/errors"
	"secmaster/internal/models"
	"secmaster/internal/pagination"
	"secmaster/internal/services"
)

// GoldenRecordHandler handles security registry requests.
type GoldenRecordHandler struct {
	goldenRecordService services.GoldenRecordServicer
}

// NewGoldenRecordHandler creates a new GoldenRecordHandler.
func NewGoldenRecordHandler(goldenRecordService services.GoldenRecordServicer) *GoldenRecordHandler {
	return &GoldenRecordHandler{goldenRecordService: goldenRecordService}
}

// CreateSecurityRequest represents the request payload for creating a security
type CreateSecurityRequest struct {
	Issuer          string `json:"issuer" binding:"required,max=255"`
	AssetClass      string `json:"asset_class" binding:"required,asset_class"`
	PrimaryTicker   string `json:"primary_ticker" binding:"required,max=20"`
	PrimaryExchange string `json:"primary_exchange" binding:"required,venue_code"`
	ISIN            string `json:"isin" binding:"required,max=12"`
	CUSIP           string `json:"cusip" binding:"omitempty,max=9"`
	SEDOL           string `json:"sedol" binding:"omitempty,max=7"`
	Currency        string `json:"currency" binding:"required,currency_code"`
	Status          string `json:"status" binding:"omitempty,security_status"`
	GoldenSource    string `json:"golden_source" binding:"max=500"`
	EditReason      string `json:"edit_reason" binding:"max=500"`
}

// UpdateSecurityRequest represents the request payload for updating a security
type UpdateSecurityRequest struct {
	Issuer            string `json:"issuer" binding:"required,max=255"`
	AssetClass        string `json:"asset_class" binding:"required,asset_class"`
	PrimaryTicker     string `json:"primary_ticker" binding:"required,max=20"`
	PrimaryExchange   string `json:"primary_exchange" binding:"required,venue_code"`
	ISIN              string `json:"isin" binding:"required,max=12"`
	CUSIP             string `json:"cusip" binding:"omitempty,max=9"`
	SEDOL             string `json:"sedol" binding:"omitempty,max=7"`
	Currency          string `json:"currency" binding:"required,currency_code"`
	Status            string `json:"status" binding:"required,security_status"`
	GoldenSource      string `json:"golden_source" binding:"max=500"`
	EditReason        string `json:"edit_reason" binding:"required,max=500"`
	ExpectedLineageID string `json:"expected_lineage_id" binding:"omitempty,max=64"`
}

// CreateSecurity handles the creation of a new golden record
// @Summary     Create a security
// @Description Create a new golden record with a freshly allocated global security id
// @Tags        securities
// @Accept      json
// @Produce     json
// @Param       X-Actor header string false "Caller identity recorded in the audit trail"
// @Param       request body CreateSecurityRequest true "Security details"
// @Success     201 {object} models.SecurityRecord "Security created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate ISIN"
// @Failure     422 {object} ErrorResponse "Business rule violations"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /securities [post]
func (h *GoldenRecordHandler) CreateSecurity(c *gin.Context) {
	var req CreateSecurityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	record, err := h.goldenRecordService.CreateSecurity(services.CreateSecurityInput{
		Issuer:          req.Issuer,
		AssetClass:      models.AssetClass(req.AssetClass),
		PrimaryTicker:   req.PrimaryTicker,
		PrimaryExchange: req.PrimaryExchange,
		ISIN:            req.ISIN,
		CUSIP:           req.CUSIP,
		SEDOL:           req.SEDOL,
		Currency:        req.Currency,
		Status:          models.SecurityStatus(req.Status),
		GoldenSource:    req.GoldenSource,
		EditReason:      req.EditReason,
		Actor:           getActor(c),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"security": record})
}

// ListSecurities returns the registry, optionally filtered
// @Summary     List securities
// @Description List golden records with optional case-insensitive search over ticker and issuer
// @Tags        securities
// @Produce     json
// @Param       search query string false "Ticker or issuer substring"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.SecurityRecord] "Securities"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /securities [get]
func (h *GoldenRecordHandler) ListSecurities(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.goldenRecordService.ListSecurities(c.Query("search"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSecurity returns one golden record
// @Summary     Get a security
// @Description Get a golden record by global security id, or by ISIN via the isin query parameter
// @Tags        securities
// @Produce     json
// @Param       gsid path string true "Global security id"
// @Success     200 {object} models.SecurityRecord "Security"
// @Failure     404 {object} ErrorResponse "Security not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /securities/{gsid} [get]
func (h *GoldenRecordHandler) GetSecurity(c *gin.Context) {
	record, err := h.goldenRecordService.GetSecurity(c.Param("gsid"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"security": record})
}

// FindByISIN returns the golden record holding an ISIN
// @Summary     Find a security by ISIN
// @Description Resolve an ISIN to the golden record that owns it
// @Tags        securities
// @Produce     json
// @Param       isin query string true "ISIN"
// @Success     200 {object} models.SecurityRecord "Security"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Security not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /securities/by-isin [get]
func (h *GoldenRecordHandler) FindByISIN(c *gin.Context) {
	isin := c.Query("isin")
	if isin == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "isin query parameter is required"))
		return
	}

	record, err := h.goldenRecordService.FindByISIN(isin)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"security": record})
}

// UpdateSecurity applies new field values to an existing golden record
// @Summary     Update a security
// @Description Update a golden record, appending an UPDATE event to its lineage chain
// @Tags        securities
// @Accept      json
// @Produce     json
// @Param       X-Actor header string false "Caller identity recorded in the audit trail"
// @Param       gsid path string true "Global security id"
// @Param       request body UpdateSecurityRequest true "New field values"
// @Success     200 {object} models.SecurityRecord "Security updated"
// @Failure     400 {object} ErrorResponse "Invalid input or missing edit reason"
// @Failure     404 {object} ErrorResponse "Security not found"
// @Failure     409 {object} ErrorResponse "Duplicate ISIN or stale record"
// @Failure     422 {object} ErrorResponse "Business rule violations"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /securities/{gsid} [put]
func (h *GoldenRecordHandler) UpdateSecurity(c *gin.Context) {
	var req UpdateSecurityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	record, err := h.goldenRecordService.UpdateSecurity(c.Param("gsid"), services.UpdateSecurityInput{
		Issuer:            req.Issuer,
		AssetClass:        models.AssetClass(req.AssetClass),
		PrimaryTicker:     req.PrimaryTicker,
		PrimaryExchange:   req.PrimaryExchange,
		ISIN:              req.ISIN,
		CUSIP:             req.CUSIP,
		SEDOL:             req.SEDOL,
		Currency:          req.Currency,
		Status:            models.SecurityStatus(req.Status),
		GoldenSource:      req.GoldenSource,
		EditReason:        req.EditReason,
		Actor:             getActor(c),
		ExpectedLineageID: req.ExpectedLineageID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"security": record})
}

// GetLineage returns a record's full lineage chain
// @Summary     Traverse lineage
// @Description Return every history event for a security, oldest to newest
// @Tags        securities
// @Produce     json
// @Param       gsid path string true "Global security id"
// @Success     200 {array} models.HistoryEvent "Lineage events"
// @Failure     404 {object} ErrorResponse "Security not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /securities/{gsid}/lineage [get]
func (h *GoldenRecordHandler) GetLineage(c *gin.Context) {
	events, err := h.goldenRecordService.TraverseLineage(c.Param("gsid"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"lineage": events})
}

// HistoryQuery represents the query parameters for listing history
type HistoryQuery struct {
	ChangedBy string `form:"changed_by"`
	Ticker    string `form:"ticker"`
	Currency  string `form:"currency"`
	Exchange  string `form:"exchange"`
	ISIN      string `form:"isin"`
	pagination.PageRequest
}

// ListHistory returns the audit log
// @Summary     List history
// @Description List the append-only audit log, newest first, with optional filters
// @Tags        history
// @Produce     json
// @Param       changed_by query string false "Actor filter"
// @Param       ticker query string false "Ticker filter, before or after value"
// @Param       currency query string false "Currency filter, before or after value"
// @Param       exchange query string false "Exchange filter, before or after value"
// @Param       isin query string false "ISIN substring filter"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.HistoryEvent] "History events"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /history [get]
func (h *GoldenRecordHandler) ListHistory(c *gin.Context) {
	var query HistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.goldenRecordService.ListHistory(services.HistoryFilter{
		ChangedBy: query.ChangedBy,
		Ticker:    query.Ticker,
		Currency:  query.Currency,
		Exchange:  query.Exchange,
		ISIN:      query.ISIN,
	}, query.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetQuality returns registry-wide data quality metrics
// @Summary     Data quality summary
// @Description Aggregate rule compliance over the full registry
// @Tags        quality
// @Produce     json
// @Success     200 {object} services.QualityMetrics "Quality metrics"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /quality [get]
func (h *GoldenRecordHandler) GetQuality(c *gin.Context) {
	metrics, err := h.goldenRecordService.DataQualitySummary()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quality": metrics})
}
