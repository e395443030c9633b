package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "secmaster/internal/errors"
	"secmaster/internal/services"
)

// LookupHandler handles external identifier lookup requests.
type LookupHandler struct {
	lookupService services.LookupServicer
}

// NewLookupHandler creates a new LookupHandler.
func NewLookupHandler(lookupService services.LookupServicer) *LookupHandler {
	return &LookupHandler{lookupService: lookupService}
}

// LookupIdentifier resolves an ISIN or ticker through the external provider
// @Summary     Look up an identifier
// @Description Resolve an ISIN or ticker to security attributes via OpenFIGI. Read-only enrichment; the registry is never modified.
// @Tags        lookup
// @Produce     json
// @Param       identifier path string true "ISIN or ticker"
// @Success     200 {object} figi.SecurityAttributes "Security attributes"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     502 {object} ErrorResponse "Provider failure or no match"
// @Router      /lookup/{identifier} [get]
func (h *LookupHandler) LookupIdentifier(c *gin.Context) {
	identifier := c.Param("identifier")
	if identifier == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "identifier is required"))
		return
	}

	attrs, err := h.lookupService.LookupIdentifier(c.Request.Context(), identifier)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"attributes": attrs})
}
