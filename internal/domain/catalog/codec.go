package catalog

import (
	"fmt"
	"strings"

	"github.com/mbrandall/survivor-pool/internal/domain/pool"
)

// FileHeader is the first line of the generated catalog file.
const FileHeader = "PlayerID,PlayerName,Position,TeamID"

// Encode renders the catalog in its tabular file format. Values are
// comma-free by construction (ids and abbreviations), so no quoting is
// applied.
func Encode(players []Player) string {
	var b strings.Builder
	b.WriteString(FileHeader)
	b.WriteByte('\n')
	for _, p := range players {
		b.WriteString(p.ID)
		b.WriteByte(',')
		b.WriteString(p.Name)
		b.WriteByte(',')
		b.WriteString(string(p.Position))
		b.WriteByte(',')
		b.WriteString(p.Team)
		b.WriteByte('\n')
	}
	return b.String()
}

// Decode parses a previously encoded catalog file.
func Decode(raw string) ([]Player, error) {
	lines := strings.Split(strings.TrimRight(raw, "\n"), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != FileHeader {
		return nil, fmt.Errorf("catalog file is missing header %q", FileHeader)
	}

	out := make([]Player, 0, len(lines)-1)
	for i, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 4 {
			return nil, fmt.Errorf("catalog line %d: expected 4 fields, got %d", i+2, len(fields))
		}
		out = append(out, Player{
			ID:       fields[0],
			Name:     fields[1],
			Position: pool.Position(fields[2]),
			Team:     fields[3],
		})
	}

	return out, nil
}
