package reasoning

import (
	"fmt"
	"strings"

	"gastroassist-be/pkg/query"
)

// NeedType classifies an information need for downstream routing.
type NeedType string

const (
	NeedTypeGeneral NeedType = "general"
	NeedTypeMedical NeedType = "medical"
)

// InformationNeed is a structured sub-query produced by the agent.
// Order in the returned slice determines processing sequence.
type InformationNeed struct {
	Type     NeedType `json:"type"`
	Query    string   `json:"query"`
	Priority float64  `json:"priority"`
}

// Intent is the question category detected from the query text.
type Intent string

const (
	IntentTreatment  Intent = "treatment"
	IntentDiagnosis  Intent = "diagnosis"
	IntentMedication Intent = "medication"
	IntentGuideline  Intent = "guideline"
	IntentScreening  Intent = "screening"
)

// Fixed vocabularies, scanned in priority order: conditions first,
// then procedures, then medications. The first matching term from the
// first matching vocabulary wins.
var (
	conditionTerms = []string{
		"gerd", "acid reflux", "heartburn", "ibs", "irritable bowel",
		"crohn", "ulcerative colitis", "colitis", "ibd",
		"inflammatory bowel", "celiac", "peptic ulcer", "ulcer",
		"gastritis", "barrett", "h. pylori", "h pylori", "helicobacter",
		"diverticulitis", "diverticulosis", "pancreatitis", "gallstone",
		"hepatitis", "cirrhosis", "fatty liver", "gastroparesis",
		"dysphagia", "esophagitis", "constipation", "diarrhea",
		"hemorrhoid", "colon cancer", "colorectal cancer", "polyp",
	}

	procedureTerms = []string{
		"colonoscopy", "endoscopy", "sigmoidoscopy", "ercp",
		"capsule endoscopy", "manometry", "ph monitoring", "biopsy",
		"fibroscan", "paracentesis",
	}

	medicationTerms = []string{
		"omeprazole", "pantoprazole", "esomeprazole", "lansoprazole",
		"proton pump inhibitor", "ppi", "famotidine", "h2 blocker",
		"antacid", "mesalamine", "sulfasalazine", "infliximab",
		"adalimumab", "vedolizumab", "azathioprine", "budesonide",
		"loperamide", "linaclotide", "lubiprostone", "rifaximin",
		"ondansetron", "metoclopramide",
	}
)

// Intent keyword sets, scanned in declaration order; first match wins.
var intentKeywords = []struct {
	intent   Intent
	keywords []string
}{
	{IntentTreatment, []string{"treatment", "treat", "therapy", "manage", "management", "cure", "relief", "remedy"}},
	{IntentDiagnosis, []string{"diagnos", "symptom", "workup", "differential", "test for", "detect"}},
	{IntentMedication, []string{"medication", "drug", "dosage", "dose", "side effect", "prescri"}},
	{IntentGuideline, []string{"guideline", "recommendation", "protocol", "consensus", "evidence"}},
	{IntentScreening, []string{"screening", "screen for", "prevention", "surveillance", "risk factor"}},
}

// Query templates per intent. The %s slot receives the matched term, or
// the whole normalized query when only an intent matched.
var intentTemplates = map[Intent]string{
	IntentTreatment:  "current treatment guidelines for %s in gastroenterology",
	IntentDiagnosis:  "diagnostic criteria and workup for %s in gastroenterology",
	IntentMedication: "medication options and dosing for %s in gastroenterology",
	IntentGuideline:  "clinical practice guidelines for %s in gastroenterology",
	IntentScreening:  "screening and surveillance recommendations for %s in gastroenterology",
}

// Agent analyzes processed queries and determines information needs.
type Agent struct{}

func NewAgent() *Agent {
	return &Agent{}
}

// Analyze maps a processed query to an ordered list of information needs.
// The result is never empty: a specialized (or generic) need comes first
// and the verbatim original query is always appended as a lower-priority
// fallback. All needs are tagged medical so retrieval prefers the curated
// medical search path.
func (a *Agent) Analyze(pq query.ProcessedQuery) []InformationNeed {
	text := pq.NormalizedText

	term, termFound := matchTerm(text)
	intent, intentFound := matchIntent(text)

	var needs []InformationNeed

	switch {
	case termFound || intentFound:
		subject := term
		if !termFound {
			subject = text
		}
		needs = append(needs, InformationNeed{
			Type:     NeedTypeMedical,
			Query:    specializedQuery(intent, intentFound, subject),
			Priority: 1.0,
		})
	default:
		needs = append(needs, InformationNeed{
			Type:     NeedTypeMedical,
			Query:    fmt.Sprintf("gastroenterology %s evidence-based", text),
			Priority: 1.0,
		})
	}

	// Raw-query fallback need, always last.
	needs = append(needs, InformationNeed{
		Type:     NeedTypeMedical,
		Query:    pq.OriginalText,
		Priority: 0.8,
	})

	return needs
}

// matchTerm scans the three vocabularies in priority order and returns
// the first matching term only.
func matchTerm(text string) (string, bool) {
	for _, vocabulary := range [][]string{conditionTerms, procedureTerms, medicationTerms} {
		for _, term := range vocabulary {
			if strings.Contains(text, term) {
				return term, true
			}
		}
	}
	return "", false
}

// matchIntent returns the first intent whose keyword set matches.
func matchIntent(text string) (Intent, bool) {
	for _, set := range intentKeywords {
		for _, kw := range set.keywords {
			if strings.Contains(text, kw) {
				return set.intent, true
			}
		}
	}
	return "", false
}

func specializedQuery(intent Intent, intentFound bool, subject string) string {
	if intentFound {
		return fmt.Sprintf(intentTemplates[intent], subject)
	}
	// Term without a recognizable intent: generic evidence-focused query.
	return fmt.Sprintf("%s overview evidence-based gastroenterology", subject)
}
