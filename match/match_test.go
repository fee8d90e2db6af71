package match

import (
	"testing"

	"rollscan/bntext"
)

func TestScoreIdentity(t *testing.T) {
	inputs := []string{
		"",
		"রহিম",
		"রহিমআলী",
		"রহিম আলী চৌধুরী",
		"Ward07",
	}
	for _, in := range inputs {
		if got := Score(in, in); got != 100 {
			t.Errorf("Score(%q, %q) = %d, want 100", in, in, got)
		}
	}
}

func TestScoreNormalizedIdentity(t *testing.T) {
	// Property from the matcher contract: any string compared against
	// itself after normalization scores 100.
	inputs := []string{"নাম : রহিম আলী।", "দুঃখ", "রাষ্ট্র পরিষদ"}
	for _, in := range inputs {
		n := bntext.Normalize(in)
		if got := Score(n, n); got != 100 {
			t.Errorf("Score(normalize(%q)) = %d, want 100", in, got)
		}
	}
}

func TestScoreSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"রহিমআলী", "রহিমআলি"},
		{"রহিম আলী", "আলী রহিম"},
		{"করিম", "রহিম"},
		{"", "রহিম"},
	}
	for _, p := range pairs {
		ab := Score(p[0], p[1])
		ba := Score(p[1], p[0])
		if ab != ba {
			t.Errorf("Score(%q, %q) = %d but Score(%q, %q) = %d", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestScoreOCRVariant(t *testing.T) {
	// One-character OCR variant (ী vs ি) of a two-word Bengali name,
	// compared in normalized form: must clear 82 but not 99.
	a := bntext.Normalize("রহিম আলী")
	b := bntext.Normalize("রহিম আলি")

	score := Score(a, b)
	if score < 82 {
		t.Errorf("Score = %d, want >= 82", score)
	}
	if score >= 99 {
		t.Errorf("Score = %d, want < 99", score)
	}
	if !Match(a, b, 82) {
		t.Error("Match at threshold 82 should succeed")
	}
	if Match(a, b, 99) {
		t.Error("Match at threshold 99 should fail")
	}
}

func TestScoreTokenReorder(t *testing.T) {
	// Same tokens in a different order share the full token set and
	// should score a perfect 100.
	if got := Score("রহিম আলী", "আলী রহিম"); got != 100 {
		t.Errorf("Score(reordered tokens) = %d, want 100", got)
	}
}

func TestScoreSubsetTokens(t *testing.T) {
	// One side carrying an extra token still scores highly because the
	// shared-token recombination dominates.
	got := Score("রহিম আলী", "রহিম আলী চৌধুরী")
	if got < 80 {
		t.Errorf("Score(subset tokens) = %d, want >= 80", got)
	}
}

func TestScoreDisjoint(t *testing.T) {
	got := Score("অআইঈ", "কখগঘ")
	if got > 30 {
		t.Errorf("Score(disjoint strings) = %d, want low score", got)
	}
}

func TestMatchThresholdMonotonic(t *testing.T) {
	// Raising the threshold can only shrink the matched set.
	pairs := [][2]string{
		{"রহিমআলী", "রহিমআলি"},
		{"রহিমআলী", "রহিমআলী"},
		{"করিম", "বরকত"},
		{"রহিম আলী", "আলী রহিম"},
	}
	for t1 := 0; t1 <= 100; t1 += 10 {
		for t2 := t1 + 10; t2 <= 100; t2 += 10 {
			for _, p := range pairs {
				if Match(p[0], p[1], t2) && !Match(p[0], p[1], t1) {
					t.Errorf("Match(%q, %q) passes at %d but not at %d", p[0], p[1], t2, t1)
				}
			}
		}
	}
}

func TestMatchBoundaryThresholds(t *testing.T) {
	if !Match("a", "b", 0) {
		t.Error("Threshold 0 should match anything")
	}
	if !Match("রহিম", "রহিম", 100) {
		t.Error("Threshold 100 should match identical strings")
	}
	if Match("রহিমx", "রহিমy", 100) {
		t.Error("Threshold 100 should reject near-identical strings")
	}
}
