// Package periods holds the reporting period catalogue. Periods are immutable
// reference data; the UI picks one and every VAT figure derives from it.
package periods

// ReportingPeriod is one selectable reporting window. Value is the period key
// used across the VAT endpoints, either "Qn-YYYY" or "YYYY-MM". Dates are ISO
// day strings.
type ReportingPeriod struct {
	Label     string `json:"label"`
	Value     string `json:"value"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// IsQuarterly reports whether the period spans a quarter.
func (p ReportingPeriod) IsQuarterly() bool {
	return len(p.Value) > 0 && p.Value[0] == 'Q'
}
