package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMember_IsAdmissible(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.Local)

	tests := []struct {
		name   string
		status MemberStatus
		expiry time.Time
		want   bool
	}{
		{"active with future expiry", MemberStatusActive, now.Add(24 * time.Hour), true},
		{"active with past expiry", MemberStatusActive, now.Add(-time.Hour), false},
		{"active with zero expiry fails open", MemberStatusActive, time.Time{}, true},
		{"expired status", MemberStatusExpired, now.Add(24 * time.Hour), false},
		{"cancelled status", MemberStatusCancelled, now.Add(24 * time.Hour), false},
		{"frozen status", MemberStatusFrozen, now.Add(24 * time.Hour), false},
		{"expired status with past expiry", MemberStatusExpired, now.Add(-time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Member{Status: tt.status, ExpiryDate: tt.expiry}
			assert.Equal(t, tt.want, m.IsAdmissible(now))
		})
	}
}

func TestMember_IsExpired_ReevaluatedPerCall(t *testing.T) {
	expiry := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)
	m := &Member{Status: MemberStatusActive, ExpiryDate: expiry}

	assert.False(t, m.IsExpired(expiry.Add(-time.Minute)))
	assert.True(t, m.IsExpired(expiry.Add(time.Minute)))
}

func TestAttendanceRecord_IsOpen(t *testing.T) {
	now := time.Now()

	open := &AttendanceRecord{Status: AttendanceStatusSuccess, CheckInTime: now}
	assert.True(t, open.IsOpen())

	closed := &AttendanceRecord{Status: AttendanceStatusSuccess, CheckInTime: now, CheckOutTime: &now}
	assert.False(t, closed.IsOpen())

	failed := &AttendanceRecord{Status: AttendanceStatusFailed, CheckInTime: now}
	assert.False(t, failed.IsOpen())
}
