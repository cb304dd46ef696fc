package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLeaveDaysInclusive(t *testing.T) {
	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	oneDay := &LeaveRequest{StartDate: start, EndDate: start}
	assert.Equal(t, 1, oneDay.Days())

	week := &LeaveRequest{StartDate: start, EndDate: start.AddDate(0, 0, 6)}
	assert.Equal(t, 7, week.Days())

	inverted := &LeaveRequest{StartDate: start, EndDate: start.AddDate(0, 0, -1)}
	assert.Equal(t, 0, inverted.Days())
}
