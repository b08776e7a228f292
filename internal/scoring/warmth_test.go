package scoring

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) *time.Time {
	t := testNow.AddDate(0, 0, -n)
	return &t
}

func TestScoreWarmth(t *testing.T) {
	tests := []struct {
		name       string
		daysAgo    int
		wantScore  int
		wantBucket WarmthBucket
	}{
		{"today", 0, 100, WarmthHot},
		{"one week", 7, 99, WarmthHot},
		{"hot boundary", 90, 80, WarmthHot},
		{"just past hot", 91, 79, WarmthWarm},
		{"six months", 180, 67, WarmthWarm},
		{"warm boundary", 365, 40, WarmthWarm},
		{"just past warm", 366, 39, WarmthCold},
		{"two years", 730, 27, WarmthCold},
		{"ancient", 5000, 0, WarmthCold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreWarmth(daysAgo(tt.daysAgo), testNow)
			if got.Score != tt.wantScore {
				t.Errorf("Score = %d, want %d", got.Score, tt.wantScore)
			}
			if got.Bucket != tt.wantBucket {
				t.Errorf("Bucket = %s, want %s", got.Bucket, tt.wantBucket)
			}
		})
	}
}

func TestScoreWarmth_NoInteraction(t *testing.T) {
	got := ScoreWarmth(nil, testNow)
	if got.Score != 0 {
		t.Errorf("Score = %d, want 0", got.Score)
	}
	if got.Bucket != WarmthCold {
		t.Errorf("Bucket = %s, want cold", got.Bucket)
	}
}

func TestScoreWarmth_FutureDate(t *testing.T) {
	// A future-dated interaction clamps to zero days rather than erroring.
	future := testNow.AddDate(0, 0, 14)
	got := ScoreWarmth(&future, testNow)
	if got.Score != 100 {
		t.Errorf("Score = %d, want 100", got.Score)
	}
	if got.Bucket != WarmthHot {
		t.Errorf("Bucket = %s, want hot", got.Bucket)
	}
}

func TestScoreWarmth_Bounds(t *testing.T) {
	for days := 0; days <= 4000; days += 13 {
		got := ScoreWarmth(daysAgo(days), testNow)
		if got.Score < 0 || got.Score > 100 {
			t.Fatalf("days=%d: score %d out of [0,100]", days, got.Score)
		}

		var want WarmthBucket
		switch {
		case days <= HotMaxDays:
			want = WarmthHot
		case days <= WarmMaxDays:
			want = WarmthWarm
		default:
			want = WarmthCold
		}
		if got.Bucket != want {
			t.Fatalf("days=%d: bucket %s, want %s", days, got.Bucket, want)
		}
	}
}

func TestScoreWarmth_Idempotent(t *testing.T) {
	d := daysAgo(120)
	first := ScoreWarmth(d, testNow)
	second := ScoreWarmth(d, testNow)
	if first != second {
		t.Errorf("repeated calls differ: %+v vs %+v", first, second)
	}
}
