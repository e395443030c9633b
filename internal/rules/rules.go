// Package rules holds the cross-field business rules for security
// identifiers. Validate is a pure function with no I/O so it can be
// exercised at write time by the golden record service and re-checked
// as a detection query by data quality reporting.
package rules

import "strings"

// LondonVenue is the exchange code that requires a SEDOL.
const LondonVenue = "LSEG"

// USCountryPrefix is the ISIN country prefix that requires a CUSIP.
const USCountryPrefix = "US"

// Rule violation messages. These are surfaced verbatim to callers, so
// they name the field and the reason rather than a generic failure.
const (
	MsgSEDOLRequired = "SEDOL is required for LSEG traded securities"
	MsgCUSIPRequired = "CUSIP is required for US-based securities (ISIN starting with 'US')"
)

// Validate returns zero or more rule violations for the given identifier
// combination. Both rules can fire together; the result is empty when
// all rules pass.
func Validate(exchange, isin, cusip, sedol string) []string {
	var violations []string

	if exchange == LondonVenue && strings.TrimSpace(sedol) == "" {
		violations = append(violations, MsgSEDOLRequired)
	}

	if strings.HasPrefix(isin, USCountryPrefix) && strings.TrimSpace(cusip) == "" {
		violations = append(violations, MsgCUSIPRequired)
	}

	return violations
}
