package output

import (
	"math"
	"strings"
	"testing"
)

func TestCheckNoSources(t *testing.T) {
	qa := NewQualityAssurance()

	got := qa.Check("", []Source{})

	if got.ConfidenceScore != 0.0 {
		t.Errorf("ConfidenceScore = %v, want 0.0", got.ConfidenceScore)
	}
	if got.SourceCount != 0 {
		t.Errorf("SourceCount = %d, want 0", got.SourceCount)
	}
	if got.WordCount != 0 {
		t.Errorf("WordCount = %d, want 0", got.WordCount)
	}
	if got.HasMedicalSources {
		t.Error("HasMedicalSources = true, want false")
	}
}

func TestCheckFullSaturation(t *testing.T) {
	qa := NewQualityAssurance()

	// Five perfect sources and a 100+ word answer saturate every term.
	sources := make([]Source, 5)
	for i := range sources {
		sources[i] = Source{Confidence: 1.0, Type: "medical"}
	}
	answer := strings.Repeat("word ", 120)

	got := qa.Check(answer, sources)

	if got.ConfidenceScore != 1.0 {
		t.Errorf("ConfidenceScore = %v, want exactly 1.0", got.ConfidenceScore)
	}
	if !got.HasMedicalSources {
		t.Error("HasMedicalSources = false, want true")
	}
}

func TestCheckWeightedFormula(t *testing.T) {
	qa := NewQualityAssurance()

	sources := []Source{
		{Confidence: 0.9, Type: "medical"},
		{Confidence: 0.5, Type: "general"},
	}
	answer := strings.Repeat("w ", 50) // 50 words

	got := qa.Check(answer, sources)

	// 0.6*0.7 + 0.2*(2/5) + 0.2*(50/100)
	want := 0.6*0.7 + 0.2*0.4 + 0.2*0.5
	if math.Abs(got.ConfidenceScore-want) > 1e-9 {
		t.Errorf("ConfidenceScore = %v, want %v", got.ConfidenceScore, want)
	}
	if got.WordCount != 50 {
		t.Errorf("WordCount = %d, want 50", got.WordCount)
	}
	if got.SourceCount != 2 {
		t.Errorf("SourceCount = %d, want 2", got.SourceCount)
	}
}

func TestCheckGeneralOnlySources(t *testing.T) {
	qa := NewQualityAssurance()

	got := qa.Check("short answer", []Source{{Confidence: 0.7, Type: "general"}})

	if got.HasMedicalSources {
		t.Error("HasMedicalSources = true for general-only sources")
	}
	if got.ConfidenceScore <= 0 {
		t.Errorf("ConfidenceScore = %v, want > 0", got.ConfidenceScore)
	}
}
