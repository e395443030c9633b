package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "secmaster/internal/errors"
	"secmaster/internal/lineage"
	"secmaster/internal/logger"
	"secmaster/internal/models"
	"secmaster/internal/pagination"
	"secmaster/internal/rules"
)

// defaultInsertReason is recorded when a caller creates a security
// without supplying an explicit edit reason.
const defaultInsertReason = "New security created"

// goldenRecordService enforces identity and business-rule integrity for
// the security reference registry and maintains its audit trail.
type goldenRecordService struct {
	db      *gorm.DB
	lineage *lineage.Generator
	now     func() time.Time
}

// NewGoldenRecordService creates a new GoldenRecordServicer.
func NewGoldenRecordService(db *gorm.DB) GoldenRecordServicer {
	return &goldenRecordService{
		db:      db,
		lineage: lineage.NewGenerator(),
		now:     time.Now,
	}
}

// CreateSecurity validates, allocates a GSID, and persists a new golden
// record together with its INSERT history event in one transaction. No
// record or history row is written on any validation failure.
func (s *goldenRecordService) CreateSecurity(in CreateSecurityInput) (*models.SecurityRecord, error) {
	if strings.TrimSpace(in.Issuer) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Issuer name is required")
	}
	if strings.TrimSpace(in.PrimaryTicker) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Primary ticker is required")
	}

	isin := normalizeIdentifier(in.ISIN)
	if isin == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "ISIN is required")
	}
	cusip := normalizeIdentifier(in.CUSIP)
	sedol := normalizeIdentifier(in.SEDOL)

	if violations := rules.Validate(in.PrimaryExchange, isin, cusip, sedol); len(violations) > 0 {
		return nil, apperrors.WithViolations(apperrors.ErrValidationFailed, violations)
	}

	actor := in.Actor
	if actor == "" {
		actor = "system"
	}
	editReason := strings.TrimSpace(in.EditReason)
	if editReason == "" {
		editReason = defaultInsertReason
	}
	status := in.Status
	if status == "" {
		status = models.StatusActive
	}

	var record models.SecurityRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.SecurityRecord{}).Where("isin = ?", isin).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrPersistence, err)
		}
		if count > 0 {
			return apperrors.ErrDuplicateISIN
		}

		gsid, err := nextGSID(tx)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		lineageID := s.lineage.NewID(gsid)

		record = models.SecurityRecord{
			GlobalSecurityID: gsid,
			Issuer:           strings.TrimSpace(in.Issuer),
			AssetClass:       in.AssetClass,
			PrimaryTicker:    strings.ToUpper(strings.TrimSpace(in.PrimaryTicker)),
			PrimaryExchange:  in.PrimaryExchange,
			ISIN:             isin,
			CUSIP:            cusip,
			SEDOL:            sedol,
			Currency:         in.Currency,
			Status:           status,
			GoldenSource:     in.GoldenSource,
			LastValidated:    now,
			LineageID:        lineageID,
			CreatedBy:        actor,
			CreatedAt:        now,
			LastModifiedBy:   actor,
		}

		// History first: a reader must never observe a record whose
		// most recent history event is missing.
		event := buildHistoryEvent(models.ActionInsert, nil, &record, editReason, actor, lineageID, "", lineageID, now)
		if err := tx.Create(event).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrPersistence, err)
		}

		if err := tx.Create(&record).Error; err != nil {
			if isUniqueConstraintError(err) {
				return apperrors.ErrDuplicateISIN
			}
			return apperrors.Wrap(apperrors.ErrPersistence, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// GetSecurity returns a golden record by its global security id.
func (s *goldenRecordService) GetSecurity(gsid string) (*models.SecurityRecord, error) {
	var record models.SecurityRecord
	if err := s.db.First(&record, "global_security_id = ?", gsid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSecurityNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return &record, nil
}

// FindByISIN returns the record holding the given ISIN, case-normalized.
// This is the remediation path for a duplicate-ISIN failure.
func (s *goldenRecordService) FindByISIN(isin string) (*models.SecurityRecord, error) {
	var record models.SecurityRecord
	if err := s.db.First(&record, "isin = ?", normalizeIdentifier(isin)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSecurityNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return &record, nil
}

// ListSecurities returns a paginated slice of the registry, optionally
// filtered by a case-insensitive search over ticker and issuer.
func (s *goldenRecordService) ListSecurities(search string, page pagination.PageRequest) (*pagination.PageResponse[models.SecurityRecord], error) {
	page.Defaults()

	base := s.db.Model(&models.SecurityRecord{})
	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + strings.ToUpper(search) + "%"
		base = base.Where("UPPER(primary_ticker) LIKE ? OR UPPER(issuer) LIKE ?", pattern, pattern)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	var records []models.SecurityRecord
	if err := base.Order("primary_ticker ASC").Scopes(pagination.Paginate(page)).Find(&records).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	result := pagination.NewPageResponse(records, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateSecurity applies new field values to an existing record,
// appending an UPDATE history event before the record change becomes
// visible, so lineage traversal never has a gap. The write is a
// compare-and-swap on the lineage id read in the same transaction.
func (s *goldenRecordService) UpdateSecurity(gsid string, in UpdateSecurityInput) (*models.SecurityRecord, error) {
	if strings.TrimSpace(in.EditReason) == "" {
		return nil, apperrors.ErrEditReasonMissing
	}

	isin := normalizeIdentifier(in.ISIN)
	cusip := normalizeIdentifier(in.CUSIP)
	sedol := normalizeIdentifier(in.SEDOL)

	if violations := rules.Validate(in.PrimaryExchange, isin, cusip, sedol); len(violations) > 0 {
		return nil, apperrors.WithViolations(apperrors.ErrValidationFailed, violations)
	}

	actor := in.Actor
	if actor == "" {
		actor = "system"
	}

	var updated models.SecurityRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var current models.SecurityRecord
		if err := tx.First(&current, "global_security_id = ?", gsid).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrSecurityNotFound
			}
			return apperrors.Wrap(apperrors.ErrPersistence, err)
		}

		if in.ExpectedLineageID != "" && in.ExpectedLineageID != current.LineageID {
			return apperrors.ErrStaleRecord
		}

		if isin != current.ISIN && isin != "" {
			var count int64
			if err := tx.Model(&models.SecurityRecord{}).
				Where("isin = ? AND global_security_id <> ?", isin, gsid).
				Count(&count).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrPersistence, err)
			}
			if count > 0 {
				return apperrors.ErrDuplicateISIN
			}
		}

		now := s.now().UTC()
		lineageID := s.lineage.NewID(gsid)
		parentID := current.LineageID
		path := lineage.AppendPath(s.parentPath(tx, parentID), lineageID)

		updated = current
		updated.Issuer = strings.TrimSpace(in.Issuer)
		updated.AssetClass = in.AssetClass
		updated.PrimaryTicker = strings.ToUpper(strings.TrimSpace(in.PrimaryTicker))
		updated.PrimaryExchange = in.PrimaryExchange
		updated.ISIN = isin
		updated.CUSIP = cusip
		updated.SEDOL = sedol
		updated.Currency = in.Currency
		updated.Status = in.Status
		updated.GoldenSource = in.GoldenSource
		updated.LastValidated = now
		updated.LineageID = lineageID
		updated.LastModifiedBy = actor

		event := buildHistoryEvent(models.ActionUpdate, &current, &updated,
			strings.TrimSpace(in.EditReason), actor, lineageID, parentID, path, now)
		if err := tx.Create(event).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrPersistence, err)
		}

		res := tx.Model(&models.SecurityRecord{}).
			Where("global_security_id = ? AND lineage_id = ?", gsid, parentID).
			Updates(map[string]interface{}{
				"issuer":           updated.Issuer,
				"asset_class":      updated.AssetClass,
				"primary_ticker":   updated.PrimaryTicker,
				"primary_exchange": updated.PrimaryExchange,
				"isin":             updated.ISIN,
				"cusip":            updated.CUSIP,
				"sedol":            updated.SEDOL,
				"currency":         updated.Currency,
				"status":           updated.Status,
				"golden_source":    updated.GoldenSource,
				"last_validated":   updated.LastValidated,
				"lineage_id":       updated.LineageID,
				"last_modified_by": updated.LastModifiedBy,
			})
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrPersistence, res.Error)
		}
		if res.RowsAffected == 0 {
			// Lost the race to a concurrent update between read and write.
			return apperrors.ErrStaleRecord
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// TraverseLineage returns every history event for a record, oldest to
// newest. A chain integrity violation is logged but the events are still
// returned so the caller can inspect the gap.
func (s *goldenRecordService) TraverseLineage(gsid string) ([]models.HistoryEvent, error) {
	var count int64
	if err := s.db.Model(&models.SecurityRecord{}).Where("global_security_id = ?", gsid).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	if count == 0 {
		return nil, apperrors.ErrSecurityNotFound
	}

	var events []models.HistoryEvent
	if err := s.db.
		Where("global_security_id = ?", gsid).
		Order("changed_at ASC, id ASC").
		Find(&events).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	if err := lineage.VerifyChain(events); err != nil {
		logger.Named("goldenrecord").Warnw("lineage chain integrity violation",
			"gsid", gsid,
			"error", err.Error(),
		)
	}
	return events, nil
}

// ListHistory returns the audit log, newest first, with the optional
// filters the history view offers.
func (s *goldenRecordService) ListHistory(filter HistoryFilter, page pagination.PageRequest) (*pagination.PageResponse[models.HistoryEvent], error) {
	page.Defaults()

	base := s.db.Model(&models.HistoryEvent{})
	if filter.ChangedBy != "" {
		base = base.Where("changed_by = ?", filter.ChangedBy)
	}
	if filter.Ticker != "" {
		t := strings.ToUpper(filter.Ticker)
		base = base.Where("primary_ticker_after = ? OR primary_ticker_before = ?", t, t)
	}
	if filter.Currency != "" {
		base = base.Where("currency_after = ? OR currency_before = ?", filter.Currency, filter.Currency)
	}
	if filter.Exchange != "" {
		base = base.Where("primary_exchange_after = ? OR primary_exchange_before = ?", filter.Exchange, filter.Exchange)
	}
	if filter.ISIN != "" {
		pattern := "%" + strings.ToUpper(filter.ISIN) + "%"
		base = base.Where("isin_after LIKE ? OR isin_before LIKE ?", pattern, pattern)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	var events []models.HistoryEvent
	if err := base.Order("changed_at DESC, id DESC").Scopes(pagination.Paginate(page)).Find(&events).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	result := pagination.NewPageResponse(events, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// DataQualitySummary aggregates rule compliance over the full registry.
// Pure read, no side effects.
func (s *goldenRecordService) DataQualitySummary() (*QualityMetrics, error) {
	var metrics QualityMetrics
	err := s.db.Raw(`
		SELECT
			COUNT(*) AS total_records,
			COUNT(CASE WHEN primary_exchange = 'LSEG' AND (sedol IS NULL OR sedol = '') THEN 1 END) AS lseg_missing_sedol,
			COUNT(CASE WHEN isin LIKE 'US%' AND (cusip IS NULL OR cusip = '') THEN 1 END) AS us_missing_cusip,
			COUNT(CASE WHEN isin IS NULL OR isin = '' THEN 1 END) AS missing_isin,
			COUNT(CASE WHEN status = 'Active' THEN 1 END) AS active_records,
			COUNT(CASE WHEN status = 'Pre-Issue' THEN 1 END) AS pre_issue_records,
			COUNT(CASE WHEN status IN ('Matured', 'Defaulted', 'Retired') THEN 1 END) AS retired_records
		FROM security_master_reference
	`).Scan(&metrics).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return &metrics, nil
}

// parentPath resolves the lineage path of the parent event so the new
// event's path extends the full trail. Records predating the history
// table fall back to the bare parent id.
func (s *goldenRecordService) parentPath(tx *gorm.DB, parentID string) string {
	if parentID == "" {
		return ""
	}
	var parent models.HistoryEvent
	if err := tx.First(&parent, "lineage_id = ?", parentID).Error; err != nil {
		return parentID
	}
	return parent.LineagePath
}

// nextGSID increments the dedicated counter and formats the next global
// security id. Runs inside the caller's transaction.
func nextGSID(tx *gorm.DB) (string, error) {
	res := tx.Model(&models.Sequence{}).
		Where("name = ?", models.GSIDSequenceName).
		Update("value", gorm.Expr("value + 1"))
	if res.Error != nil {
		return "", apperrors.Wrap(apperrors.ErrPersistence, res.Error)
	}
	if res.RowsAffected == 0 {
		seq := models.Sequence{Name: models.GSIDSequenceName, Value: 1}
		if err := tx.Create(&seq).Error; err != nil {
			return "", apperrors.Wrap(apperrors.ErrPersistence, err)
		}
		return fmt.Sprintf("GSID_%d", seq.Value), nil
	}

	var seq models.Sequence
	if err := tx.First(&seq, "name = ?", models.GSIDSequenceName).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return fmt.Sprintf("GSID_%d", seq.Value), nil
}

// buildHistoryEvent captures every mutable field as a before/after pair,
// even unchanged ones, to keep the audit trail self-describing.
func buildHistoryEvent(
	action models.HistoryAction,
	before, after *models.SecurityRecord,
	editReason, actor, lineageID, parentID, path string,
	at time.Time,
) *models.HistoryEvent {
	event := &models.HistoryEvent{
		GlobalSecurityID: after.GlobalSecurityID,
		Action:           action,
		EditReason:       editReason,
		ChangedBy:        actor,
		ChangedAt:        at,
		SourceSystem:     models.SourceSystem,
		LineageID:        lineageID,
		LineageParentID:  parentID,
		LineagePath:      path,
	}

	if before != nil {
		event.IssuerBefore = before.Issuer
		event.AssetClassBefore = string(before.AssetClass)
		event.PrimaryTickerBefore = before.PrimaryTicker
		event.PrimaryExchangeBefore = before.PrimaryExchange
		event.ISINBefore = before.ISIN
		event.CUSIPBefore = before.CUSIP
		event.SEDOLBefore = before.SEDOL
		event.CurrencyBefore = before.Currency
		event.StatusBefore = string(before.Status)
		event.GoldenSourceBefore = before.GoldenSource
	}

	event.IssuerAfter = after.Issuer
	event.AssetClassAfter = string(after.AssetClass)
	event.PrimaryTickerAfter = after.PrimaryTicker
	event.PrimaryExchangeAfter = after.PrimaryExchange
	event.ISINAfter = after.ISIN
	event.CUSIPAfter = after.CUSIP
	event.SEDOLAfter = after.SEDOL
	event.CurrencyAfter = after.Currency
	event.StatusAfter = string(after.Status)
	event.GoldenSourceAfter = after.GoldenSource

	return event
}

// normalizeIdentifier trims and upper-cases an identifier for storage
// and comparison.
func normalizeIdentifier(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// isUniqueConstraintError checks if a GORM error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // SQLite
		strings.Contains(msg, "duplicate key value violates unique constraint") // PostgreSQL
}
