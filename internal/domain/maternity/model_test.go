package maternity

import (
	"testing"
	"time"
)

func TestStageAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		delivery time.Time
		want     PregnancyStage
	}{
		{"past due date", now.AddDate(0, 0, -1), StagePostPartum},
		{"due date equals now", now, StagePostPartum},
		{"two weeks out", now.AddDate(0, 0, 14), StageThirdTrimester},
		{"thirteen weeks out", now.AddDate(0, 0, 13*7), StageThirdTrimester},
		{"twenty weeks out", now.AddDate(0, 0, 20*7), StageSecondTrimester},
		{"twenty-seven weeks out", now.AddDate(0, 0, 27*7), StageSecondTrimester},
		{"thirty-five weeks out", now.AddDate(0, 0, 35*7), StageFirstTrimester},
	}
	for _, tc := range cases {
		if got := StageAt(tc.delivery, now); got != tc.want {
			t.Errorf("%s: StageAt = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestHealthStatusValid(t *testing.T) {
	for _, s := range []HealthStatus{StatusNormal, StatusNeedsAttention, StatusCritical} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if HealthStatus("unknown").Valid() {
		t.Error("unknown status should not be valid")
	}
}
