package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonthNumber(t *testing.T) {
	tests := []struct {
		token string
		month int
		ok    bool
	}{
		{"June", 6, true},
		{"june", 6, true},
		{"September 2025", 9, true},
		{"for December", 12, true},
		{"Jun", 0, false},
		{"Jane Smith", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		month, ok := monthNumber(tt.token)
		assert.Equal(t, tt.ok, ok, "token %q", tt.token)
		assert.Equal(t, tt.month, month, "token %q", tt.token)
	}
}

func TestExtractPeriod(t *testing.T) {
	tests := []struct {
		text   string
		period string
		ok     bool
	}{
		{"Payroll summary for 2025-06", "2025-06", true},
		{"Payroll summary for 2025/6", "2025-06", true},
		{"Payroll summary for 2025 11", "2025-11", true},
		{"Download payslip PDF for June 2025", "2025-06", true},
		{"payroll for december 2024", "2024-12", true},
		{"Payroll summary for 2025-13", "", false},
		{"Payroll summary please", "", false},
	}
	for _, tt := range tests {
		period, ok := extractPeriod(tt.text)
		assert.Equal(t, tt.ok, ok, "text %q", tt.text)
		assert.Equal(t, tt.period, period, "text %q", tt.text)
	}
}
