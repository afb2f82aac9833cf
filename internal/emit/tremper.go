// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package emit

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/pdiddy/scoresheet-engine/pkg/types"
)

// Tremper emits the tab-separated ranked summary used for the harmonet
// score archive: one line per competitor with the summed score, sorted
// descending. Competitors whose scores are all absent total zero and
// sort last in first-seen order.
func Tremper(records []types.ScoreRecord) ([]byte, error) {
	var order []string
	totals := make(map[string]float64)
	groups := make(map[string]string)

	for _, rec := range records {
		if _, seen := totals[rec.Competitor]; !seen {
			totals[rec.Competitor] = 0
			order = append(order, rec.Competitor)
			groups[rec.Competitor] = rec.Group
		}
		if rec.Score != nil {
			totals[rec.Competitor] += *rec.Score
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return totals[order[i]] > totals[order[j]]
	})

	var buf bytes.Buffer
	buf.WriteString("Competitor\tGroup\tTotal Score\n")
	for _, comp := range order {
		fmt.Fprintf(&buf, "%s\t%s\t%s\n", comp, groups[comp], formatScore(totals[comp]))
	}
	return buf.Bytes(), nil
}
