package services

import (
	"context"

	"secmaster/internal/figi"
	"secmaster/internal/models"
	"secmaster/internal/pagination"
)

// CreateSecurityInput is the full field set for a new SecurityRecord.
type CreateSecurityInput struct {
	Issuer          string
	AssetClass      models.AssetClass
	PrimaryTicker   string
	PrimaryExchange string
	ISIN            string
	CUSIP           string
	SEDOL           string
	Currency        string
	Status          models.SecurityStatus
	GoldenSource    string
	EditReason      string
	Actor           string
}

// UpdateSecurityInput is the proposed new field values for an existing
// record. ExpectedLineageID, when set, requests an optimistic-concurrency
// check: the update fails with STALE_RECORD if the record's lineage id
// has moved since the caller read it.
type UpdateSecurityInput struct {
	Issuer            string
	AssetClass        models.AssetClass
	PrimaryTicker     string
	PrimaryExchange   string
	ISIN              string
	CUSIP             string
	SEDOL             string
	Currency          string
	Status            models.SecurityStatus
	GoldenSource      string
	EditReason        string
	Actor             string
	ExpectedLineageID string
}

// HistoryFilter holds optional filter parameters for listing history events.
type HistoryFilter struct {
	ChangedBy string
	Ticker    string
	Currency  string
	Exchange  string
	ISIN      string
}

// QualityMetrics aggregates registry-wide rule compliance. It surfaces
// the same invariants the write-time gate enforces, as a detection
// mechanism for records that entered the registry before the rules did.
type QualityMetrics struct {
	TotalRecords     int64 `gorm:"column:total_records" json:"total_records"`
	LSEGMissingSEDOL int64 `gorm:"column:lseg_missing_sedol" json:"lseg_missing_sedol"`
	USMissingCUSIP   int64 `gorm:"column:us_missing_cusip" json:"us_missing_cusip"`
	MissingISIN      int64 `gorm:"column:missing_isin" json:"missing_isin"`
	ActiveRecords    int64 `gorm:"column:active_records" json:"active_records"`
	PreIssueRecords  int64 `gorm:"column:pre_issue_records" json:"pre_issue_records"`
	RetiredRecords   int64 `gorm:"column:retired_records" json:"retired_records"`
}

// GoldenRecordServicer defines the contract for the golden record
// manager: identity and business-rule integrity for the security
// reference registry, plus its replayable audit trail.
type GoldenRecordServicer interface {
	CreateSecurity(in CreateSecurityInput) (*models.SecurityRecord, error)
	GetSecurity(gsid string) (*models.SecurityRecord, error)
	FindByISIN(isin string) (*models.SecurityRecord, error)
	ListSecurities(search string, page pagination.PageRequest) (*pagination.PageResponse[models.SecurityRecord], error)
	UpdateSecurity(gsid string, in UpdateSecurityInput) (*models.SecurityRecord, error)
	TraverseLineage(gsid string) ([]models.HistoryEvent, error)
	ListHistory(filter HistoryFilter, page pagination.PageRequest) (*pagination.PageResponse[models.HistoryEvent], error)
	DataQualitySummary() (*QualityMetrics, error)
}

// LookupServicer defines the contract for external identifier enrichment.
type LookupServicer interface {
	LookupIdentifier(ctx context.Context, identifier string) (*figi.SecurityAttributes, error)
}
