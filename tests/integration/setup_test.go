package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"secmaster/internal/figi"
	"secmaster/internal/handlers"
	"secmaster/internal/logger"
	"secmaster/internal/middleware"
	"secmaster/internal/models"
	"secmaster/internal/services"
	"secmaster/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.SecurityRecord{},
		&models.HistoryEvent{},
		&models.Sequence{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated
// in-memory SQLite. figiURL points the lookup collaborator at a fake
// provider; pass "" when the test never touches lookup routes.
func setupApp(t *testing.T, figiURL string) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	goldenRecordService := services.NewGoldenRecordService(db)
	figiClient := figi.NewClientWithBaseURL(http.DefaultClient, figiURL, "")
	lookupService := services.NewLookupService(figiClient)

	goldenRecordHandler := handlers.NewGoldenRecordHandler(goldenRecordService)
	lookupHandler := handlers.NewLookupHandler(lookupService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Actor())

	securities := v1.Group("/securities")
	securities.POST("", goldenRecordHandler.CreateSecurity)
	securities.GET("", goldenRecordHandler.ListSecurities)
	securities.GET("/by-isin", goldenRecordHandler.FindByISIN)
	securities.GET("/:gsid", goldenRecordHandler.GetSecurity)
	securities.PUT("/:gsid", goldenRecordHandler.UpdateSecurity)
	securities.GET("/:gsid/lineage", goldenRecordHandler.GetLineage)

	v1.GET("/history", goldenRecordHandler.ListHistory)
	v1.GET("/quality", goldenRecordHandler.GetQuality)
	v1.GET("/lookup/:identifier", lookupHandler.LookupIdentifier)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, actor string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if actor != "" {
		req.Header.Set("X-Actor", actor)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// createSecurity creates a golden record and returns its GSID.
func (app *testApp) createSecurity(t *testing.T, body, actor string) string {
	t.Helper()
	rec := app.request("POST", "/api/v1/securities", body, actor)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create security failed: %d %s", rec.Code, rec.Body.String())
	}
	security := parseJSON(t, rec)["security"].(map[string]interface{})
	return security["global_security_id"].(string)
}
