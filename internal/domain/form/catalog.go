package form

import (
	"fmt"
	"slices"
	"strings"

	"github.com/riskibarqy/fpl-analyst/internal/domain/gameweek"
)

// SearchEntry is one row of the player search list.
type SearchEntry struct {
	Name     string `json:"name"`
	Team     string `json:"team"`
	Position string `json:"position"`
}

type SearchList struct {
	Players []SearchEntry `json:"players"`
	Count   int           `json:"count"`
}

// Series is the full trend of one player.
type Series struct {
	Name      string  `json:"name"`
	Team      string  `json:"team"`
	Position  string  `json:"position"`
	Gameweeks []Point `json:"gameweeks"`
}

// Catalog maps a display name to its series.
type Catalog map[string]Series

// BuildCatalog builds the search list and per-player trends of a snapshot.
// Display names are unique keys: a name shared by several players is
// suffixed with the player id for every player after the first (by id).
func BuildCatalog(snapshot gameweek.Snapshot) (SearchList, Catalog) {
	groups := snapshot.ByPlayer()
	catalog := make(Catalog, len(groups))
	search := SearchList{Players: make([]SearchEntry, 0, len(groups))}

	for _, playerID := range snapshot.PlayerIDs() {
		records := groups[playerID]
		latest := records[len(records)-1]

		name := latest.DisplayName()
		if name == "" {
			name = gameweek.UnknownLabel
		}
		if _, taken := catalog[name]; taken {
			name = fmt.Sprintf("%s #%d", name, playerID)
		}

		series := Series{
			Name:      name,
			Team:      latest.Team(),
			Position:  string(positionOrUnknown(latest.Position)),
			Gameweeks: Trend(records),
		}
		catalog[name] = series
		search.Players = append(search.Players, SearchEntry{Name: series.Name, Team: series.Team, Position: series.Position})
	}

	slices.SortStableFunc(search.Players, func(a, b SearchEntry) int {
		return strings.Compare(a.Name, b.Name)
	})
	search.Count = len(search.Players)
	return search, catalog
}

// Select returns the series for the given names, each limited to the last
// limit gameweeks. Unknown names are skipped.
func (c Catalog) Select(names []string, limit int) Catalog {
	out := make(Catalog, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		series, ok := c[name]
		if !ok {
			continue
		}
		series.Gameweeks = LimitRecent(series.Gameweeks, limit)
		out[name] = series
	}
	return out
}

func positionOrUnknown(p gameweek.Position) gameweek.Position {
	if p == "" {
		return gameweek.PositionUnknown
	}
	return p
}
