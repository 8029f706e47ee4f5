package csvsource

// Column names of the gameweek export.
const (
	colElement       = "element"
	colWebName       = "web_name"
	colFirstName     = "first_name"
	colSecondName    = "second_name"
	colTeamName      = "team_name"
	colElementType   = "element_type"
	colPositionName  = "position_name"
	colGameweek      = "gameweek"
	colMinutes       = "minutes"
	colTotalPoints   = "total_points"
	colGoals         = "G"
	colAssists       = "A"
	colCleanSheets   = "CS"
	colGoalsConceded = "GC"
	colXG            = "xG"
	colXA            = "xA"
	colXCS           = "xCS"
	colXGC           = "xGC"
	colShots         = "shots"
	colShotsOnTarget = "SoT"
	colKeyPasses     = "key_passes"
	colTouches       = "touches"
	colNowCost       = "now_cost"
	colSelectedBy    = "selected_by_percent"
)

// Header is the column order written by Encode.
var Header = []string{
	colElement,
	colWebName,
	colFirstName,
	colSecondName,
	colTeamName,
	colElementType,
	colPositionName,
	colGameweek,
	colMinutes,
	colTotalPoints,
	colGoals,
	colAssists,
	colCleanSheets,
	colGoalsConceded,
	colXG,
	colXA,
	colXCS,
	colXGC,
	colShots,
	colShotsOnTarget,
	colKeyPasses,
	colTouches,
	colNowCost,
	colSelectedBy,
}
