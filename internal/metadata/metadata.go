// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metadata recovers the non-tabular front matter of an official
// scoring summary (round name, location, panel, awards, draw) from the
// plain page text. Parsing is pure text-in, struct-out so it can be
// tested without real PDFs.
package metadata

import (
	"fmt"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scoresheet-engine/internal/tabular"
	"github.com/pdiddy/scoresheet-engine/pkg/types"
)

// panelCategories are the judging categories listed on an official panel.
var panelCategories = []string{"PC", "ADM", "MUS", "PER", "SNG"}

var (
	roundNameRe = regexp.MustCompile(`Official Scoring Summary[ \t]*\n?[ \t]*([^\n]+)`)
	locDateRe   = regexp.MustCompile(`(?m)^([^;\n]+);[ \t]*([^\n]+)$`)
	panelRe     = regexp.MustCompile(`(?s)Official Panel\s*(.*?)(?:Awards|Footnotes|Draw|$)`)
	awardsRe    = regexp.MustCompile(`(?s)Awards\s*(.*?)(?:Footnotes|Draw|Evaluation Only|$)`)
	footnotesRe = regexp.MustCompile(`(?s)Footnotes\s*(.*?)(?:Draw|Evaluation Only|$)`)
	drawRe      = regexp.MustCompile(`(?s)Draw\s*(.*?)(?:Evaluation Only|MT:|Published by|$)`)
	drawLineRe  = regexp.MustCompile(`(?m)^(\d+):[ \t]*(.+)$`)
	micTesterRe = regexp.MustCompile(`MT:[ \t]*([^\n]+)`)
	evalOnlyRe  = regexp.MustCompile(`(?s)performed for evaluation score only:\s*(.*?)(?:\n\n|Published by|Awards|Draw|Footnotes|$)`)
	publishedRe = regexp.MustCompile(`Published by (.*?) at ([^\n]+)`)
	disqualRe   = regexp.MustCompile(`(?s)disqualified for violation of the BHS Contest Rules:\s*(.*?)(?:\n\n|$)`)
	awardHeadRe = regexp.MustCompile(`^\d+\s+.*:`)
)

// FromPDF extracts the full page text and parses the front matter.
func FromPDF(pdfPath string) (types.Metadata, error) {
	text, err := tabular.PlainText(pdfPath)
	if err != nil {
		return types.Metadata{}, fmt.Errorf("extracting text: %w", err)
	}
	return Parse(text), nil
}

// EmitYAML serializes the metadata as a YAML document.
func EmitYAML(md types.Metadata) ([]byte, error) {
	data, err := yaml.Marshal(md)
	if err != nil {
		return nil, fmt.Errorf("marshaling metadata: %w", err)
	}
	return data, nil
}

// Parse scans the summary text for the known front-matter sections.
// Sections the text does not carry stay empty; Parse never fails.
func Parse(text string) types.Metadata {
	md := types.Metadata{
		OfficialPanel: make(map[string]string),
	}

	if m := roundNameRe.FindStringSubmatch(text); m != nil {
		md.RoundName = strings.TrimSpace(m[1])
	}
	if m := locDateRe.FindStringSubmatch(text); m != nil {
		md.Location = strings.TrimSpace(m[1])
		md.Date = strings.TrimSpace(m[2])
	}

	if m := panelRe.FindStringSubmatch(text); m != nil {
		for _, cat := range panelCategories {
			re := regexp.MustCompile(cat + `:[ \t]*([^\n]+)`)
			if cm := re.FindStringSubmatch(m[1]); cm != nil {
				md.OfficialPanel[cat] = strings.TrimSpace(cm[1])
			}
		}
	}

	if m := awardsRe.FindStringSubmatch(text); m != nil {
		md.Awards = parseAwards(m[1])
	}

	if m := footnotesRe.FindStringSubmatch(text); m != nil {
		for _, line := range strings.Split(m[1], "\n") {
			line = strings.TrimSpace(line)
			if line != "" && !strings.HasPrefix(line, "Published by") {
				md.Footnotes = append(md.Footnotes, line)
			}
		}
	}

	if m := drawRe.FindStringSubmatch(text); m != nil {
		for _, entry := range drawLineRe.FindAllStringSubmatch(m[1], -1) {
			md.Draw = append(md.Draw, types.DrawEntry{
				Number: entry[1],
				Group:  strings.TrimSpace(entry[2]),
			})
		}
	}
	if m := micTesterRe.FindStringSubmatch(text); m != nil {
		md.MicTester = strings.TrimSpace(m[1])
	}

	if m := evalOnlyRe.FindStringSubmatch(text); m != nil {
		md.EvaluationOnly = splitCommaList(m[1])
	}

	if m := publishedRe.FindStringSubmatch(text); m != nil {
		md.Published.Name = strings.TrimSpace(m[1])
		md.Published.Date = strings.TrimSpace(m[2])
	}

	if m := disqualRe.FindStringSubmatch(text); m != nil {
		md.Disqualifications = splitCommaList(m[1])
	}

	return md
}

// parseAwards splits the awards section into blocks. A block starts at a
// line like "1 Novice Quartet:"; the award title is that line and the
// winner is the next non-empty line.
func parseAwards(section string) []types.Award {
	var awards []types.Award
	var current *types.Award

	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "Published by") {
			continue
		}
		if awardHeadRe.MatchString(line) {
			awards = append(awards, types.Award{Award: line})
			current = &awards[len(awards)-1]
			continue
		}
		if current != nil && current.Winner == "" {
			current.Winner = line
		}
	}
	return awards
}

func splitCommaList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
