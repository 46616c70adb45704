package game

import "sort"

const (
	guessFloorPoints = 10
	drawerBonus      = 5
)

// Scores is the wire form of the ledger: display name -> cumulative points.
type Scores map[string]int

// Standing is one ledger row keyed by connection identity.
type Standing struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}

// guessPoints is ceil(remaining/2) + 10.
func guessPoints(remaining int) int {
	if remaining < 0 {
		remaining = 0
	}
	return (remaining+1)/2 + guessFloorPoints
}

func ledger(players map[string]*Player) Scores {
	scores := make(Scores, len(players))
	for _, p := range players {
		scores[p.Name] = p.Score
	}
	return scores
}

// standings orders players by score, then name, then id.
func standings(players map[string]*Player) []Standing {
	rows := make([]Standing, 0, len(players))
	for _, p := range players {
		rows = append(rows, Standing{PlayerID: p.ID, Name: p.Name, Score: p.Score})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].PlayerID < rows[j].PlayerID
	})
	return rows
}
