package usecase

import (
	"github.com/riskibarqy/fpl-analyst/internal/domain/artifact"
	"github.com/riskibarqy/fpl-analyst/internal/domain/curation"
	"github.com/riskibarqy/fpl-analyst/internal/domain/form"
	"github.com/riskibarqy/fpl-analyst/internal/domain/season"
	"github.com/riskibarqy/fpl-analyst/internal/domain/teamstrength"
)

// PlayerList is the season/players artifact.
type PlayerList struct {
	Players []season.PlayerExport `json:"players"`
	Count   int                   `json:"count"`
}

// TeamList is used for season/teams and the three ranking artifacts.
type TeamList struct {
	View  string                    `json:"view,omitempty"`
	Teams []teamstrength.TeamExport `json:"teams"`
	Count int                       `json:"count"`
}

type AttackingPicksList struct {
	AttackingPicks []curation.AttackingTeam `json:"attackingPicks"`
}

type DefensivePicksList struct {
	DefensivePicks []curation.DefensiveTeam `json:"defensivePicks"`
}

// Report is the complete output of one analysis run.
type Report struct {
	Info       artifact.RunInfo
	Players    PlayerList
	Teams      TeamList
	Rankings   map[teamstrength.View]TeamList
	Lists      []curation.List
	QuickPicks curation.QuickPicks
	Search     form.SearchList
	Trends     form.Catalog
}

// Artifacts lays the report out as publishable artifacts. The run artifact
// comes last so readers that see it can rely on the rest being written.
func (r Report) Artifacts() []artifact.Artifact {
	out := []artifact.Artifact{
		{Key: artifact.Players, Payload: r.Players},
		{Key: artifact.Teams, Payload: r.Teams},
		{Key: artifact.AttackRankings, Payload: r.Rankings[teamstrength.ByAttack]},
		{Key: artifact.DefenseRankings, Payload: r.Rankings[teamstrength.ByDefense]},
		{Key: artifact.OverallRankings, Payload: r.Rankings[teamstrength.ByOverall]},
	}
	for _, list := range r.Lists {
		out = append(out, artifact.Artifact{Key: artifact.TopPerformer(list.Name), Payload: list})
	}
	out = append(out,
		artifact.Artifact{Key: artifact.AttackingPicks, Payload: AttackingPicksList{AttackingPicks: r.QuickPicks.Attacking}},
		artifact.Artifact{Key: artifact.DefensivePicks, Payload: DefensivePicksList{DefensivePicks: r.QuickPicks.Defensive}},
		artifact.Artifact{Key: artifact.PlayerSearch, Payload: r.Search},
		artifact.Artifact{Key: artifact.PlayerData, Payload: r.Trends},
	)

	info := r.Info
	info.Artifacts = len(out) + 1
	out = append(out, artifact.Artifact{Key: artifact.Run, Payload: info})
	return out
}

// ArtifactKeys lists every key a run publishes, in publish order.
func ArtifactKeys(registry *curation.Registry) []artifact.Key {
	keys := []artifact.Key{
		artifact.Players,
		artifact.Teams,
		artifact.AttackRankings,
		artifact.DefenseRankings,
		artifact.OverallRankings,
	}
	for _, name := range registry.Names() {
		keys = append(keys, artifact.TopPerformer(name))
	}
	return append(keys,
		artifact.AttackingPicks,
		artifact.DefensivePicks,
		artifact.PlayerSearch,
		artifact.PlayerData,
		artifact.Run,
	)
}

func exportTeams(teams []teamstrength.Team, view teamstrength.View) TeamList {
	out := make([]teamstrength.TeamExport, 0, len(teams))
	for _, t := range teams {
		out = append(out, t.Export())
	}
	return TeamList{View: string(view), Teams: out, Count: len(out)}
}

func exportPlayers(aggs []season.Aggregate) PlayerList {
	out := make([]season.PlayerExport, 0, len(aggs))
	for _, a := range aggs {
		out = append(out, a.Export())
	}
	return PlayerList{Players: out, Count: len(out)}
}
