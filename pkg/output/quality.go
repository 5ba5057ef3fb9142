package output

import "strings"

// QualityReport is the deterministic assessment of a final answer.
type QualityReport struct {
	ConfidenceScore   float64 `json:"confidence_score"`
	WordCount         int     `json:"word_count"`
	SourceCount       int     `json:"source_count"`
	HasMedicalSources bool    `json:"has_medical_sources"`
}

// QualityAssurance scores answers with a fixed linear weighting. No
// calibration, no learning; identical inputs always score identically.
type QualityAssurance struct{}

func NewQualityAssurance() *QualityAssurance {
	return &QualityAssurance{}
}

// Check computes confidence as 0.6 times the mean source confidence,
// plus 0.2 for source count (saturating at 5) and 0.2 for answer length
// (saturating at 100 words). Zero sources means zero confidence.
func (q *QualityAssurance) Check(answer string, sources []Source) QualityReport {
	report := QualityReport{
		WordCount:   len(strings.Fields(answer)),
		SourceCount: len(sources),
	}

	for _, s := range sources {
		if s.Type == "medical" {
			report.HasMedicalSources = true
			break
		}
	}

	if report.SourceCount == 0 {
		return report
	}

	var sum float64
	for _, s := range sources {
		sum += s.Confidence
	}
	avgConfidence := sum / float64(report.SourceCount)

	sourceFactor := float64(report.SourceCount) / 5
	if sourceFactor > 1 {
		sourceFactor = 1
	}
	lengthFactor := float64(report.WordCount) / 100
	if lengthFactor > 1 {
		lengthFactor = 1
	}

	report.ConfidenceScore = avgConfidence*0.6 + sourceFactor*0.2 + lengthFactor*0.2
	return report
}
