package models

import "time"

// HistoryAction is the kind of mutation a HistoryEvent records.
type HistoryAction string

const (
	ActionInsert HistoryAction = "INSERT"
	ActionUpdate HistoryAction = "UPDATE"
)

// SourceSystem tags every history event with the system that wrote it.
const SourceSystem = "Security Master EDM"

// HistoryEvent is an immutable audit record capturing one change to a
// SecurityRecord. Rows are append-only: never updated, never deleted.
//
// Every mutable field is captured as a before/after pair even when
// unchanged, so each event is self-describing without reference to its
// neighbours. LineageParentID is the record's lineage id immediately
// before this event (empty for the initial INSERT), and LineagePath is
// the parent's path extended with this event's lineage id, so the full
// chain can be reconstructed without walking history row by row.
type HistoryEvent struct {
	ID               uint          `gorm:"primaryKey" json:"history_id"`
	GlobalSecurityID string        `gorm:"not null;index;size:32" json:"global_security_id"`
	Action           HistoryAction `gorm:"not null;size:12" json:"action"`

	IssuerBefore          string `json:"issuer_before,omitempty"`
	IssuerAfter           string `json:"issuer_after,omitempty"`
	AssetClassBefore      string `json:"asset_class_before,omitempty"`
	AssetClassAfter       string `json:"asset_class_after,omitempty"`
	PrimaryTickerBefore   string `json:"primary_ticker_before,omitempty"`
	PrimaryTickerAfter    string `json:"primary_ticker_after,omitempty"`
	PrimaryExchangeBefore string `json:"primary_exchange_before,omitempty"`
	PrimaryExchangeAfter  string `json:"primary_exchange_after,omitempty"`
	ISINBefore            string `gorm:"column:isin_before" json:"isin_before,omitempty"`
	ISINAfter             string `gorm:"column:isin_after" json:"isin_after,omitempty"`
	CUSIPBefore           string `gorm:"column:cusip_before" json:"cusip_before,omitempty"`
	CUSIPAfter            string `gorm:"column:cusip_after" json:"cusip_after,omitempty"`
	SEDOLBefore           string `gorm:"column:sedol_before" json:"sedol_before,omitempty"`
	SEDOLAfter            string `gorm:"column:sedol_after" json:"sedol_after,omitempty"`
	CurrencyBefore        string `json:"currency_before,omitempty"`
	CurrencyAfter         string `json:"currency_after,omitempty"`
	StatusBefore          string `json:"status_before,omitempty"`
	StatusAfter           string `json:"status_after,omitempty"`
	GoldenSourceBefore    string `json:"golden_source_before,omitempty"`
	GoldenSourceAfter     string `json:"golden_source_after,omitempty"`

	EditReason   string    `gorm:"not null" json:"edit_reason"`
	ChangedBy    string    `gorm:"not null" json:"changed_by"`
	ChangedAt    time.Time `gorm:"not null;index" json:"changed_at"`
	SourceSystem string    `gorm:"not null" json:"source_system"`

	LineageID       string `gorm:"not null;uniqueIndex;size:64" json:"lineage_id"`
	LineageParentID string `gorm:"size:64" json:"lineage_parent_id,omitempty"`
	LineagePath     string `json:"lineage_path"`
}

// TableName maps the model onto the warehouse history table.
func (HistoryEvent) TableName() string { return "security_master_history" }
