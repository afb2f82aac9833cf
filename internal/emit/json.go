// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package emit

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pdiddy/scoresheet-engine/pkg/types"
)

// jsonEntry is one scoring line within a group and round. An absent
// score serializes as null, never as a missing key.
type jsonEntry struct {
	Competitor string   `json:"competitor"`
	Judge      string   `json:"judge"`
	Score      *float64 `json:"score"`
}

// JSON emits records grouped hierarchically: top level keyed by group,
// second level keyed by round, entries in input order within each round.
func JSON(records []types.ScoreRecord) ([]byte, error) {
	grouped := make(map[string]map[string][]jsonEntry)
	for _, rec := range records {
		rounds, ok := grouped[rec.Group]
		if !ok {
			rounds = make(map[string][]jsonEntry)
			grouped[rec.Group] = rounds
		}
		key := strconv.Itoa(rec.Round)
		rounds[key] = append(rounds[key], jsonEntry{
			Competitor: rec.Competitor,
			Judge:      rec.Judge,
			Score:      rec.Score,
		})
	}

	data, err := json.MarshalIndent(grouped, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}
