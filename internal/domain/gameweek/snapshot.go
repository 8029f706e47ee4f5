package gameweek

import (
	"cmp"
	"fmt"
	"slices"
	"sort"
)

// Snapshot is an immutable, complete set of records for one run. The
// constructor copies its input and callers only ever receive copies back, so
// a Snapshot can be shared across goroutines without locking.
type Snapshot struct {
	records []PlayerRecord
}

// NewSnapshot validates and freezes records. It fails with an EmptyInputError
// when there is nothing to aggregate and with the first record error
// otherwise.
func NewSnapshot(records []PlayerRecord) (Snapshot, error) {
	if len(records) == 0 {
		return Snapshot{}, NewEmptyInputError("no player records supplied")
	}

	out := make([]PlayerRecord, len(records))
	copy(out, records)
	for i, r := range out {
		if err := r.Validate(); err != nil {
			return Snapshot{}, fmt.Errorf("record %d: %w", i, err)
		}
	}

	return Snapshot{records: out}, nil
}

func (s Snapshot) Len() int {
	return len(s.records)
}

func (s Snapshot) Empty() bool {
	return len(s.records) == 0
}

// Records returns a copy of the snapshot records in ingestion order.
func (s Snapshot) Records() []PlayerRecord {
	out := make([]PlayerRecord, len(s.records))
	copy(out, s.records)
	return out
}

// ByPlayer groups records per player, each group sorted oldest first by
// SortByGameweek.
func (s Snapshot) ByPlayer() map[int64][]PlayerRecord {
	out := make(map[int64][]PlayerRecord)
	for _, r := range s.records {
		out[r.PlayerID] = append(out[r.PlayerID], r)
	}
	for id := range out {
		SortByGameweek(out[id])
	}
	return out
}

// ByTeam groups records by team name. Absent names group under the sentinel.
func (s Snapshot) ByTeam() map[string][]PlayerRecord {
	out := make(map[string][]PlayerRecord)
	for _, r := range s.records {
		team := r.Team()
		out[team] = append(out[team], r)
	}
	return out
}

// PlayerIDs returns distinct player ids in ascending order.
func (s Snapshot) PlayerIDs() []int64 {
	seen := make(map[int64]struct{}, len(s.records))
	out := make([]int64, 0)
	for _, r := range s.records {
		if _, ok := seen[r.PlayerID]; ok {
			continue
		}
		seen[r.PlayerID] = struct{}{}
		out = append(out, r.PlayerID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SortByGameweek sorts records in place, oldest first. Records sharing a
// gameweek are ordered by CompareRecency so the result does not depend on
// ingestion order.
func SortByGameweek(records []PlayerRecord) {
	slices.SortStableFunc(records, CompareRecency)
}

// CompareRecency orders two records of one player: by gameweek, then minutes,
// cost, ownership, team, position and web name. A positive result means a is
// the more recent record.
func CompareRecency(a, b PlayerRecord) int {
	if c := cmp.Compare(a.Gameweek, b.Gameweek); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Minutes, b.Minutes); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Cost, b.Cost); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Ownership, b.Ownership); c != 0 {
		return c
	}
	if c := cmp.Compare(a.TeamName, b.TeamName); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Position, b.Position); c != 0 {
		return c
	}
	return cmp.Compare(a.WebName, b.WebName)
}
