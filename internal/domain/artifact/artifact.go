package artifact

import (
	"strings"
	"time"
)

// Group is the directory an artifact is published under.
type Group string

const (
	GroupSeason        Group = "season"
	GroupRankings      Group = "rankings"
	GroupTopPerformers Group = "top_performers"
	GroupQuickPicks    Group = "quick_picks"
	GroupPlayerTrends  Group = "player_trends"
	GroupMeta          Group = "meta"
)

// Key identifies one published artifact.
type Key struct {
	Group Group
	Name  string
}

func (k Key) String() string {
	return string(k.Group) + "/" + k.Name
}

func (k Key) Valid() bool {
	return k.Group != "" && strings.TrimSpace(k.Name) != "" && !strings.ContainsAny(k.Name, `/\.`)
}

var (
	Players         = Key{Group: GroupSeason, Name: "players"}
	Teams           = Key{Group: GroupSeason, Name: "teams"}
	AttackRankings  = Key{Group: GroupRankings, Name: "attack_rankings"}
	DefenseRankings = Key{Group: GroupRankings, Name: "defense_rankings"}
	OverallRankings = Key{Group: GroupRankings, Name: "overall_rankings"}
	AttackingPicks  = Key{Group: GroupQuickPicks, Name: "attacking_picks"}
	DefensivePicks  = Key{Group: GroupQuickPicks, Name: "defensive_picks"}
	PlayerSearch    = Key{Group: GroupPlayerTrends, Name: "all_players"}
	PlayerData      = Key{Group: GroupPlayerTrends, Name: "player_data"}
	Run             = Key{Group: GroupMeta, Name: "run"}
)

// TopPerformer is the key of a curated recipe list.
func TopPerformer(recipe string) Key {
	return Key{Group: GroupTopPerformers, Name: recipe}
}

// Artifact is one named payload ready to be written.
type Artifact struct {
	Key     Key
	Payload any
}

// RunInfo describes one completed analysis run.
type RunInfo struct {
	RunID         string    `json:"run_id"`
	GeneratedAt   time.Time `json:"generated_at"`
	Records       int       `json:"records"`
	Players       int       `json:"players"`
	Teams         int       `json:"teams"`
	Artifacts     int       `json:"artifacts"`
	FailedRecipes []string  `json:"failed_recipes"`
	DurationMS    int64     `json:"duration_ms"`
}
