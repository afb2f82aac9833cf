// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Award pairs an award title with its winner as printed on the summary.
type Award struct {
	Award  string `json:"award" yaml:"award"`
	Winner string `json:"winner" yaml:"winner"`
}

// DrawEntry is one position in the singing order for the next round.
type DrawEntry struct {
	Number string `json:"number" yaml:"number"`
	Group  string `json:"group" yaml:"group"`
}

// Published records who published the scoring summary and when.
type Published struct {
	Name string `json:"name" yaml:"name"`
	Date string `json:"date" yaml:"date"`
}

// Metadata holds the non-tabular front matter of an official scoring
// summary: contest identification, the judging panel, awards, and the
// draw for the following round. Fields the PDF does not carry stay empty.
type Metadata struct {
	RoundName string `json:"round_name" yaml:"round_name"`
	Location  string `json:"location" yaml:"location"`
	Date      string `json:"date" yaml:"date"`

	// OfficialPanel maps judging category codes (PC, ADM, MUS, PER, SNG)
	// to the panelist names listed for that category.
	OfficialPanel map[string]string `json:"official_panel" yaml:"official_panel"`

	Awards []Award     `json:"awards" yaml:"awards"`
	Draw   []DrawEntry `json:"draw" yaml:"draw"`

	// MicTester is the group that sang for the microphone check ("MT:").
	MicTester string `json:"mic_tester,omitempty" yaml:"mic_tester,omitempty"`

	// EvaluationOnly lists groups that performed for evaluation score only.
	EvaluationOnly []string `json:"evaluation_only,omitempty" yaml:"evaluation_only,omitempty"`

	Published Published `json:"published" yaml:"published"`

	Footnotes         []string `json:"footnotes,omitempty" yaml:"footnotes,omitempty"`
	Disqualifications []string `json:"disqualifications,omitempty" yaml:"disqualifications,omitempty"`
}
