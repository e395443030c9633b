package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "secmaster/internal/errors"
	"secmaster/internal/figi"
	"secmaster/internal/models"
	"secmaster/internal/pagination"
	"secmaster/internal/rules"
	"secmaster/internal/services"
	"secmaster/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

// --- mock golden record service ---

type mockGoldenRecordService struct {
	createSecurityFn     func(in services.CreateSecurityInput) (*models.SecurityRecord, error)
	getSecurityFn        func(gsid string) (*models.SecurityRecord, error)
	findByISINFn         func(isin string) (*models.SecurityRecord, error)
	listSecuritiesFn     func(search string, page pagination.PageRequest) (*pagination.PageResponse[models.SecurityRecord], error)
	updateSecurityFn     func(gsid string, in services.UpdateSecurityInput) (*models.SecurityRecord, error)
	traverseLineageFn    func(gsid string) ([]models.HistoryEvent, error)
	listHistoryFn        func(filter services.HistoryFilter, page pagination.PageRequest) (*pagination.PageResponse[models.HistoryEvent], error)
	dataQualitySummaryFn func() (*services.QualityMetrics, error)
}

var _ services.GoldenRecordServicer = (*mockGoldenRecordService)(nil)

func (m *mockGoldenRecordService) CreateSecurity(in services.CreateSecurityInput) (*models.SecurityRecord, error) {
	if m.createSecurityFn != nil {
		return m.createSecurityFn(in)
	}
	return &models.SecurityRecord{}, nil
}

func (m *mockGoldenRecordService) GetSecurity(gsid string) (*models.SecurityRecord, error) {
	if m.getSecurityFn != nil {
		return m.getSecurityFn(gsid)
	}
	return &models.SecurityRecord{}, nil
}

func (m *mockGoldenRecordService) FindByISIN(isin string) (*models.SecurityRecord, error) {
	if m.findByISINFn != nil {
		return m.findByISINFn(isin)
	}
	return &models.SecurityRecord{}, nil
}

func (m *mockGoldenRecordService) ListSecurities(search string, page pagination.PageRequest) (*pagination.PageResponse[models.SecurityRecord], error) {
	if m.listSecuritiesFn != nil {
		return m.listSecuritiesFn(search, page)
	}
	resp := pagination.NewPageResponse([]models.SecurityRecord{}, 1, 50, 0)
	return &resp, nil
}

func (m *mockGoldenRecordService) UpdateSecurity(gsid string, in services.UpdateSecurityInput) (*models.SecurityRecord, error) {
	if m.updateSecurityFn != nil {
		return m.updateSecurityFn(gsid, in)
	}
	return &models.SecurityRecord{}, nil
}

func (m *mockGoldenRecordService) TraverseLineage(gsid string) ([]models.HistoryEvent, error) {
	if m.traverseLineageFn != nil {
		return m.traverseLineageFn(gsid)
	}
	return []models.HistoryEvent{}, nil
}

func (m *mockGoldenRecordService) ListHistory(filter services.HistoryFilter, page pagination.PageRequest) (*pagination.PageResponse[models.HistoryEvent], error) {
	if m.listHistoryFn != nil {
		return m.listHistoryFn(filter, page)
	}
	resp := pagination.NewPageResponse([]models.HistoryEvent{}, 1, 50, 0)
	return &resp, nil
}

func (m *mockGoldenRecordService) DataQualitySummary() (*services.QualityMetrics, error) {
	if m.dataQualitySummaryFn != nil {
		return m.dataQualitySummaryFn()
	}
	return &services.QualityMetrics{}, nil
}

// --- router setup ---

func injectActor(actor string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(actorKey, actor)
		c.Next()
	}
}

func setupRouter(handler *GoldenRecordHandler, actor string) *gin.Engine {
	r := gin.New()
	g := r.Group("/api/v1", injectActor(actor))
	g.POST("/securities", handler.CreateSecurity)
	g.GET("/securities", handler.ListSecurities)
	g.GET("/securities/by-isin", handler.FindByISIN)
	g.GET("/securities/:gsid", handler.GetSecurity)
	g.PUT("/securities/:gsid", handler.UpdateSecurity)
	g.GET("/securities/:gsid/lineage", handler.GetLineage)
	g.GET("/history", handler.ListHistory)
	g.GET("/quality", handler.GetQuality)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, http.NoBody)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := parseBody(t, rec)
	errObj, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

const validCreateBody = `{
	"issuer": "Example Corp",
	"asset_class": "Equity",
	"primary_ticker": "EX",
	"primary_exchange": "NYSE",
	"isin": "US0000000001",
	"cusip": "000000000",
	"currency": "USD",
	"status": "Active",
	"golden_source": "Bloomberg (primary)"
}`

// --- tests ---

func TestGoldenRecordHandler_CreateSecurity(t *testing.T) {
	t.Run("returns_201_on_success", func(t *testing.T) {
		var captured services.CreateSecurityInput
		svc := &mockGoldenRecordService{
			createSecurityFn: func(in services.CreateSecurityInput) (*models.SecurityRecord, error) {
				captured = in
				return &models.SecurityRecord{
					GlobalSecurityID: "GSID_1",
					Issuer:           in.Issuer,
					PrimaryTicker:    in.PrimaryTicker,
					Status:           models.StatusActive,
				}, nil
			},
		}
		r := setupRouter(NewGoldenRecordHandler(svc), "jsmith")

		rec := doRequest(r, http.MethodPost, "/api/v1/securities", validCreateBody)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if captured.Actor != "jsmith" {
			t.Errorf("expected actor from context, got %q", captured.Actor)
		}
		if captured.ISIN != "US0000000001" {
			t.Errorf("unexpected ISIN %q", captured.ISIN)
		}

		body := parseBody(t, rec)
		security, ok := body["security"].(map[string]interface{})
		if !ok {
			t.Fatalf("expected security envelope, got %s", rec.Body.String())
		}
		if security["global_security_id"] != "GSID_1" {
			t.Errorf("unexpected body: %v", security)
		}
	})

	t.Run("returns_400_on_unknown_exchange", func(t *testing.T) {
		r := setupRouter(NewGoldenRecordHandler(&mockGoldenRecordService{}), "jsmith")

		body := strings.Replace(validCreateBody, `"NYSE"`, `"BATS"`, 1)
		rec := doRequest(r, http.MethodPost, "/api/v1/securities", body)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		if code := errorCode(t, rec); code != "INVALID_INPUT" {
			t.Errorf("expected INVALID_INPUT, got %q", code)
		}
	})

	t.Run("returns_422_with_violations", func(t *testing.T) {
		svc := &mockGoldenRecordService{
			createSecurityFn: func(in services.CreateSecurityInput) (*models.SecurityRecord, error) {
				return nil, apperrors.WithViolations(apperrors.ErrValidationFailed, []string{rules.MsgSEDOLRequired})
			},
		}
		r := setupRouter(NewGoldenRecordHandler(svc), "jsmith")

		rec := doRequest(r, http.MethodPost, "/api/v1/securities", validCreateBody)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
		}
		body := parseBody(t, rec)
		errObj := body["error"].(map[string]interface{})
		violations, ok := errObj["violations"].([]interface{})
		if !ok || len(violations) != 1 || violations[0] != rules.MsgSEDOLRequired {
			t.Errorf("expected violation list in envelope, got %s", rec.Body.String())
		}
	})

	t.Run("returns_409_on_duplicate_isin", func(t *testing.T) {
		svc := &mockGoldenRecordService{
			createSecurityFn: func(in services.CreateSecurityInput) (*models.SecurityRecord, error) {
				return nil, apperrors.ErrDuplicateISIN
			},
		}
		r := setupRouter(NewGoldenRecordHandler(svc), "jsmith")

		rec := doRequest(r, http.MethodPost, "/api/v1/securities", validCreateBody)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "DUPLICATE_ISIN" {
			t.Errorf("expected DUPLICATE_ISIN, got %q", code)
		}
	})
}

func TestGoldenRecordHandler_GetSecurity(t *testing.T) {
	t.Run("returns_404_when_missing", func(t *testing.T) {
		svc := &mockGoldenRecordService{
			getSecurityFn: func(gsid string) (*models.SecurityRecord, error) {
				return nil, apperrors.ErrSecurityNotFound
			},
		}
		r := setupRouter(NewGoldenRecordHandler(svc), "jsmith")

		rec := doRequest(r, http.MethodGet, "/api/v1/securities/GSID_404", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "SECURITY_NOT_FOUND" {
			t.Errorf("expected SECURITY_NOT_FOUND, got %q", code)
		}
	})

	t.Run("returns_200_with_record", func(t *testing.T) {
		svc := &mockGoldenRecordService{
			getSecurityFn: func(gsid string) (*models.SecurityRecord, error) {
				return &models.SecurityRecord{GlobalSecurityID: gsid}, nil
			},
		}
		r := setupRouter(NewGoldenRecordHandler(svc), "jsmith")

		rec := doRequest(r, http.MethodGet, "/api/v1/securities/GSID_7", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := parseBody(t, rec)
		security := body["security"].(map[string]interface{})
		if security["global_security_id"] != "GSID_7" {
			t.Errorf("unexpected body: %v", security)
		}
	})
}

func TestGoldenRecordHandler_FindByISIN(t *testing.T) {
	t.Run("requires_isin_param", func(t *testing.T) {
		r := setupRouter(NewGoldenRecordHandler(&mockGoldenRecordService{}), "jsmith")

		rec := doRequest(r, http.MethodGet, "/api/v1/securities/by-isin", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("resolves_isin", func(t *testing.T) {
		svc := &mockGoldenRecordService{
			findByISINFn: func(isin string) (*models.SecurityRecord, error) {
				return &models.SecurityRecord{GlobalSecurityID: "GSID_3", ISIN: "US0378331005"}, nil
			},
		}
		r := setupRouter(NewGoldenRecordHandler(svc), "jsmith")

		rec := doRequest(r, http.MethodGet, "/api/v1/securities/by-isin?isin=US0378331005", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}

func TestGoldenRecordHandler_UpdateSecurity(t *testing.T) {
	validUpdateBody := strings.Replace(validCreateBody, "}", `, "edit_reason": "quarterly review"}`, 1)

	t.Run("passes_edit_reason_and_actor", func(t *testing.T) {
		var captured services.UpdateSecurityInput
		svc := &mockGoldenRecordService{
			updateSecurityFn: func(gsid string, in services.UpdateSecurityInput) (*models.SecurityRecord, error) {
				captured = in
				return &models.SecurityRecord{GlobalSecurityID: gsid}, nil
			},
		}
		r := setupRouter(NewGoldenRecordHandler(svc), "mlee")

		rec := doRequest(r, http.MethodPut, "/api/v1/securities/GSID_1", validUpdateBody)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if captured.EditReason != "quarterly review" || captured.Actor != "mlee" {
			t.Errorf("unexpected input: %+v", captured)
		}
	})

	t.Run("returns_400_when_edit_reason_missing", func(t *testing.T) {
		r := setupRouter(NewGoldenRecordHandler(&mockGoldenRecordService{}), "mlee")

		rec := doRequest(r, http.MethodPut, "/api/v1/securities/GSID_1", validCreateBody)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns_409_when_stale", func(t *testing.T) {
		svc := &mockGoldenRecordService{
			updateSecurityFn: func(gsid string, in services.UpdateSecurityInput) (*models.SecurityRecord, error) {
				return nil, apperrors.ErrStaleRecord
			},
		}
		r := setupRouter(NewGoldenRecordHandler(svc), "mlee")

		rec := doRequest(r, http.MethodPut, "/api/v1/securities/GSID_1", validUpdateBody)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "STALE_RECORD" {
			t.Errorf("expected STALE_RECORD, got %q", code)
		}
	})
}

func TestGoldenRecordHandler_GetLineage(t *testing.T) {
	svc := &mockGoldenRecordService{
		traverseLineageFn: func(gsid string) ([]models.HistoryEvent, error) {
			return []models.HistoryEvent{
				{GlobalSecurityID: gsid, Action: models.ActionInsert},
				{GlobalSecurityID: gsid, Action: models.ActionUpdate},
			}, nil
		},
	}
	r := setupRouter(NewGoldenRecordHandler(svc), "jsmith")

	rec := doRequest(r, http.MethodGet, "/api/v1/securities/GSID_1/lineage", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := parseBody(t, rec)
	events, ok := body["lineage"].([]interface{})
	if !ok || len(events) != 2 {
		t.Errorf("expected 2 lineage events, got %s", rec.Body.String())
	}
}

func TestGoldenRecordHandler_ListHistory(t *testing.T) {
	t.Run("forwards_filters", func(t *testing.T) {
		var captured services.HistoryFilter
		svc := &mockGoldenRecordService{
			listHistoryFn: func(filter services.HistoryFilter, page pagination.PageRequest) (*pagination.PageResponse[models.HistoryEvent], error) {
				captured = filter
				resp := pagination.NewPageResponse([]models.HistoryEvent{}, page.Page, page.PageSize, 0)
				return &resp, nil
			},
		}
		r := setupRouter(NewGoldenRecordHandler(svc), "jsmith")

		rec := doRequest(r, http.MethodGet, "/api/v1/history?changed_by=mlee&currency=GBP&page=2", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if captured.ChangedBy != "mlee" || captured.Currency != "GBP" {
			t.Errorf("filters not forwarded: %+v", captured)
		}
	})

	t.Run("rejects_oversized_page", func(t *testing.T) {
		r := setupRouter(NewGoldenRecordHandler(&mockGoldenRecordService{}), "jsmith")

		rec := doRequest(r, http.MethodGet, "/api/v1/history?page_size=1000", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestGoldenRecordHandler_GetQuality(t *testing.T) {
	svc := &mockGoldenRecordService{
		dataQualitySummaryFn: func() (*services.QualityMetrics, error) {
			return &services.QualityMetrics{TotalRecords: 10, LSEGMissingSEDOL: 2}, nil
		},
	}
	r := setupRouter(NewGoldenRecordHandler(svc), "jsmith")

	rec := doRequest(r, http.MethodGet, "/api/v1/quality", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := parseBody(t, rec)
	quality := body["quality"].(map[string]interface{})
	if quality["total_records"].(float64) != 10 {
		t.Errorf("unexpected quality body: %v", quality)
	}
}

// --- lookup handler ---

type mockLookupService struct {
	lookupFn func(ctx context.Context, identifier string) (*figi.SecurityAttributes, error)
}

var _ services.LookupServicer = (*mockLookupService)(nil)

func (m *mockLookupService) LookupIdentifier(ctx context.Context, identifier string) (*figi.SecurityAttributes, error) {
	if m.lookupFn != nil {
		return m.lookupFn(ctx, identifier)
	}
	return &figi.SecurityAttributes{}, nil
}

func TestLookupHandler_LookupIdentifier(t *testing.T) {
	t.Run("returns_attributes", func(t *testing.T) {
		svc := &mockLookupService{
			lookupFn: func(ctx context.Context, identifier string) (*figi.SecurityAttributes, error) {
				return &figi.SecurityAttributes{Name: "APPLE INC", Ticker: "AAPL"}, nil
			},
		}
		r := gin.New()
		r.GET("/api/v1/lookup/:identifier", NewLookupHandler(svc).LookupIdentifier)

		rec := doRequest(r, http.MethodGet, "/api/v1/lookup/AAPL", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := parseBody(t, rec)
		attrs := body["attributes"].(map[string]interface{})
		if attrs["name"] != "APPLE INC" {
			t.Errorf("unexpected attributes: %v", attrs)
		}
	})

	t.Run("returns_502_on_provider_failure", func(t *testing.T) {
		svc := &mockLookupService{
			lookupFn: func(ctx context.Context, identifier string) (*figi.SecurityAttributes, error) {
				return nil, apperrors.WithMessage(apperrors.ErrExternalLookup, "No identifier found.")
			},
		}
		r := gin.New()
		r.GET("/api/v1/lookup/:identifier", NewLookupHandler(svc).LookupIdentifier)

		rec := doRequest(r, http.MethodGet, "/api/v1/lookup/ZZZZ", "")

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "EXTERNAL_LOOKUP_FAILED" {
			t.Errorf("expected EXTERNAL_LOOKUP_FAILED, got %q", code)
		}
	})
}
