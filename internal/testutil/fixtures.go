package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"secmaster/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// SeedRecord inserts a golden record row directly, bypassing the
// service-level gates. Used to model data that entered the registry
// before the business rules existed.
func SeedRecord(t *testing.T, db *gorm.DB, mutate func(*models.SecurityRecord)) *models.SecurityRecord {
	t.Helper()

	n := nextID()
	now := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(n) * time.Minute)
	record := &models.SecurityRecord{
		GlobalSecurityID: fmt.Sprintf("GSID_SEED_%d", n),
		Issuer:           fmt.Sprintf("Seed Issuer %d", n),
		AssetClass:       models.AssetClassEquity,
		PrimaryTicker:    fmt.Sprintf("SEED%d", n),
		PrimaryExchange:  "NYSE",
		ISIN:             fmt.Sprintf("XS%010d", n),
		Currency:         "USD",
		Status:           models.StatusActive,
		GoldenSource:     "Legacy feed",
		LastValidated:    now,
		LineageID:        fmt.Sprintf("LIN-GSID_SEED_%d-20230601120000", n),
		CreatedBy:        "migration",
		CreatedAt:        now,
		LastModifiedBy:   "migration",
	}
	if mutate != nil {
		mutate(record)
	}

	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to seed security record: %v", err)
	}
	return record
}
