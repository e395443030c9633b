package models

import "time"

// AssetClass classifies a security in the golden record.
type AssetClass string

const (
	AssetClassEquity      AssetClass = "Equity"
	AssetClassFixedIncome AssetClass = "Fixed Income"
	AssetClassETF         AssetClass = "ETF"
	AssetClassDerivative  AssetClass = "Derivative"
	AssetClassFund        AssetClass = "Fund"
)

// SecurityStatus is the lifecycle state of a security. Records are never
// physically deleted; retirement is a transition to StatusRetired.
type SecurityStatus string

const (
	StatusPreIssue  SecurityStatus = "Pre-Issue"
	StatusActive    SecurityStatus = "Active"
	StatusMatured   SecurityStatus = "Matured"
	StatusDefaulted SecurityStatus = "Defaulted"
	StatusRetired   SecurityStatus = "Retired"
)

// SecurityRecord is the golden record for one tradable instrument: the
// single authoritative representation of its identity across identifier
// namespaces (ISIN, CUSIP, SEDOL, ticker).
//
// GlobalSecurityID is assigned once at creation and never reused or
// mutated. ISIN uniqueness across the registry is enforced by the
// service-level duplicate check plus a partial unique index in the
// Postgres schema (empty identifiers from migrated feeds are exempt).
type SecurityRecord struct {
	GlobalSecurityID string         `gorm:"primaryKey;size:32" json:"global_security_id"`
	Issuer           string         `gorm:"not null" json:"issuer"`
	AssetClass       AssetClass     `gorm:"not null" json:"asset_class"`
	PrimaryTicker    string         `gorm:"not null;index" json:"primary_ticker"`
	PrimaryExchange  string         `gorm:"not null" json:"primary_exchange"`
	ISIN             string         `gorm:"size:12;index" json:"isin,omitempty"`
	CUSIP            string         `gorm:"column:cusip;size:9" json:"cusip,omitempty"`
	SEDOL            string         `gorm:"size:7" json:"sedol,omitempty"`
	Currency         string         `gorm:"not null;size:3" json:"currency"`
	Status           SecurityStatus `gorm:"not null" json:"status"`
	GoldenSource     string         `json:"golden_source"`
	LastValidated    time.Time      `json:"last_validated"`
	// LineageID points at the most recent HistoryEvent for this record,
	// a back-reference kept in lockstep with the history table.
	LineageID      string    `gorm:"not null;size:64" json:"lineage_id"`
	CreatedBy      string    `gorm:"not null" json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	LastModifiedBy string    `gorm:"not null" json:"last_modified_by"`
}

// TableName maps the model onto the warehouse reference table.
func (SecurityRecord) TableName() string { return "security_master_reference" }
