package visit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicyClassify(t *testing.T) {
	p := DefaultPolicy()

	cases := []struct {
		name       string
		delta      int
		wantStatus string
		wantOK     bool
	}{
		{"one past grace rejected", -6, "", false},
		{"grace boundary accepted", -5, StatusCompleted, true},
		{"exactly on time", 0, StatusCompleted, true},
		{"on-time upper boundary", 5, StatusCompleted, true},
		{"first late minute", 6, StatusLate, true},
		{"late upper boundary", 15, StatusLate, true},
		{"first missed minute", 16, StatusMissed, true},
		{"far past schedule", 120, StatusMissed, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, ok := p.Classify(tc.delta)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantStatus, status)
		})
	}
}

func TestPolicyClassifyZeroGrace(t *testing.T) {
	p := Policy{EarlyGraceMinutes: 0, OnTimeMinutes: 0, LateMinutes: 10}

	_, ok := p.Classify(-1)
	assert.False(t, ok)

	status, ok := p.Classify(0)
	assert.True(t, ok)
	assert.Equal(t, StatusCompleted, status)

	status, ok = p.Classify(1)
	assert.True(t, ok)
	assert.Equal(t, StatusLate, status)
}

func TestRecordVisitRequestValidate(t *testing.T) {
	t.Run("needs checkpoint id or tag uid", func(t *testing.T) {
		err := RecordVisitRequest{GuardID: "g1"}.Validate()
		assert.Error(t, err)
	})

	t.Run("tag uid alone is enough", func(t *testing.T) {
		err := RecordVisitRequest{GuardID: "g1", TagUID: "04:A3:22:F1"}.Validate()
		assert.NoError(t, err)
	})

	t.Run("checkpoint id must be a uuid", func(t *testing.T) {
		err := RecordVisitRequest{GuardID: "g1", CheckpointID: "not-a-uuid"}.Validate()
		assert.Error(t, err)
	})

	t.Run("scan time must be rfc3339", func(t *testing.T) {
		err := RecordVisitRequest{GuardID: "g1", TagUID: "04:A3", ScanTime: "yesterday"}.Validate()
		assert.Error(t, err)
	})
}
