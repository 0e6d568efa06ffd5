package trends

import "testing"

func TestTierForScoreBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  TierClass
	}{
		{-50, TierOther},
		{-1, TierOther},
		{0, TierOther},
		{50, TierOther},
		{59, TierOther},
		{60, TierGood},
		{61, TierGood},
		{79, TierGood},
		{80, TierExcellent},
		{81, TierExcellent},
		{100, TierExcellent},
		{150, TierExcellent},
	}
	for _, tc := range cases {
		got := TierForScore(tc.score)
		if got.Class != tc.want {
			t.Errorf("TierForScore(%d).Class = %s, want %s", tc.score, got.Class, tc.want)
		}
	}
}

func TestTierForScoreTotalAndExhaustive(t *testing.T) {
	// Every integer in a wide window maps to exactly one of the three
	// tiers, and name/badge/class stay consistent.
	for score := -120; score <= 220; score++ {
		tier := TierForScore(score)
		switch tier.Class {
		case TierExcellent:
			if tier.Name != "优秀" || tier.Badge != "🏆 优秀" {
				t.Fatalf("inconsistent excellent tier at %d: %+v", score, tier)
			}
		case TierGood:
			if tier.Name != "良好" || tier.Badge != "⭐ 良好" {
				t.Fatalf("inconsistent good tier at %d: %+v", score, tier)
			}
		case TierOther:
			if tier.Name != "其他" || tier.Badge != "📋 其他" {
				t.Fatalf("inconsistent other tier at %d: %+v", score, tier)
			}
		default:
			t.Fatalf("TierForScore(%d) produced unknown class %q", score, tier.Class)
		}
	}
}

func TestTierForScoreMonotonic(t *testing.T) {
	rank := func(c TierClass) int {
		switch c {
		case TierOther:
			return 0
		case TierGood:
			return 1
		default:
			return 2
		}
	}
	prev := rank(TierForScore(-120).Class)
	for score := -119; score <= 220; score++ {
		cur := rank(TierForScore(score).Class)
		if cur < prev {
			t.Fatalf("tier rank decreased at score %d", score)
		}
		prev = cur
	}
}
