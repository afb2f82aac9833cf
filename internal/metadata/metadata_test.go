// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metadata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scoresheet-engine/pkg/types"
)

const sampleSummary = `Official Scoring Summary International Quartet Finals
Calgary, AB; 2025-07-05
Official Panel
PC: Pat Chair
ADM: Alex Admin
MUS: Mel Music, Morgan Music
PER: Perry Performance
SNG: Sam Singing
Awards
1 Novice Quartet:
The Newcomers
Footnotes
Scores reflect a 1-point penalty for Group X.
Published by Contest Office at 2025-07-05 21:30
Draw
1: The Harmonizers
2: Sound Decision
MT: Mic Check Four
The following groups performed for evaluation score only: Side Act, Warmup Crew
Published by Contest Office at 2025-07-05 21:30
`

func TestParse_FullSummary(t *testing.T) {
	md := Parse(sampleSummary)

	assert.Equal(t, "International Quartet Finals", md.RoundName)
	assert.Equal(t, "Calgary, AB", md.Location)
	assert.Equal(t, "2025-07-05", md.Date)

	assert.Equal(t, "Pat Chair", md.OfficialPanel["PC"])
	assert.Equal(t, "Alex Admin", md.OfficialPanel["ADM"])
	assert.Equal(t, "Mel Music, Morgan Music", md.OfficialPanel["MUS"])
	assert.Equal(t, "Perry Performance", md.OfficialPanel["PER"])
	assert.Equal(t, "Sam Singing", md.OfficialPanel["SNG"])

	require.Len(t, md.Awards, 1)
	assert.Equal(t, "1 Novice Quartet:", md.Awards[0].Award)
	assert.Equal(t, "The Newcomers", md.Awards[0].Winner)

	require.Len(t, md.Draw, 2)
	assert.Equal(t, types.DrawEntry{Number: "1", Group: "The Harmonizers"}, md.Draw[0])
	assert.Equal(t, types.DrawEntry{Number: "2", Group: "Sound Decision"}, md.Draw[1])
	assert.Equal(t, "Mic Check Four", md.MicTester)

	assert.Equal(t, []string{"Side Act", "Warmup Crew"}, md.EvaluationOnly)

	assert.Equal(t, "Contest Office", md.Published.Name)
	assert.Equal(t, "2025-07-05 21:30", md.Published.Date)

	require.Len(t, md.Footnotes, 1)
	assert.Contains(t, md.Footnotes[0], "1-point penalty")
}

func TestParse_Disqualifications(t *testing.T) {
	text := "The following groups were disqualified for violation of the BHS Contest Rules: Group X, Group Y\n\nPublished by Office at noon\n"
	md := Parse(text)
	assert.Equal(t, []string{"Group X", "Group Y"}, md.Disqualifications)
}

func TestParse_EmptyText(t *testing.T) {
	md := Parse("")
	assert.Empty(t, md.RoundName)
	assert.Empty(t, md.Awards)
	assert.Empty(t, md.Draw)
	assert.Empty(t, md.OfficialPanel)
}

func TestEmitYAML(t *testing.T) {
	md := Parse(sampleSummary)

	data, err := EmitYAML(md)
	require.NoError(t, err)

	var back types.Metadata
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, md.RoundName, back.RoundName)
	assert.Equal(t, md.OfficialPanel, back.OfficialPanel)
	assert.Equal(t, md.Draw, back.Draw)

	if !strings.Contains(string(data), "round_name:") {
		t.Errorf("yaml missing round_name key:\n%s", data)
	}
}
