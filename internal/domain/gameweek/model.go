package gameweek

import "strings"

// Position represents the fantasy position category of a player.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
	PositionUnknown    Position = "UNK"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// UnknownLabel is exported in place of absent string fields.
const UnknownLabel = "Unknown"

// PositionFromElementType maps the numeric element type (1=GK .. 4=FWD).
func PositionFromElementType(elementType int) Position {
	switch elementType {
	case 1:
		return PositionGoalkeeper
	case 2:
		return PositionDefender
	case 3:
		return PositionMidfielder
	case 4:
		return PositionForward
	default:
		return PositionUnknown
	}
}

// ParsePosition accepts short codes ("MID") and long names ("Midfielder").
func ParsePosition(raw string) Position {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "GK", "GKP", "GOALKEEPER":
		return PositionGoalkeeper
	case "DEF", "DEFENDER":
		return PositionDefender
	case "MID", "MIDFIELDER":
		return PositionMidfielder
	case "FWD", "FW", "FORWARD":
		return PositionForward
	default:
		return PositionUnknown
	}
}

// Name returns the long display name used in exported artifacts.
func (p Position) Name() string {
	switch p {
	case PositionGoalkeeper:
		return "Goalkeeper"
	case PositionDefender:
		return "Defender"
	case PositionMidfielder:
		return "Midfielder"
	case PositionForward:
		return "Forward"
	default:
		return UnknownLabel
	}
}

// PlayerRecord is one player-gameweek observation. Records are never mutated
// after ingestion.
type PlayerRecord struct {
	PlayerID   int64
	WebName    string
	FirstName  string
	SecondName string
	TeamName   string
	Position   Position
	Gameweek   int

	Minutes       int
	TotalPoints   int
	Goals         int
	Assists       int
	CleanSheets   int
	GoalsConceded int

	ExpectedGoals         float64
	ExpectedAssists       float64
	ExpectedCleanSheets   float64
	ExpectedGoalsConceded float64

	Shots         int
	ShotsOnTarget int
	KeyPasses     int
	Touches       int

	// Cost is fixed-point in tenths of a currency unit (55 == 5.5).
	Cost      int
	Ownership float64
}

// Played reports whether the player took the field in this gameweek.
func (r PlayerRecord) Played() bool {
	return r.Minutes > 0
}

// DisplayName falls back through web name and full name to the sentinel.
func (r PlayerRecord) DisplayName() string {
	if name := strings.TrimSpace(r.WebName); name != "" {
		return name
	}
	if full := strings.TrimSpace(r.FirstName + " " + r.SecondName); full != "" {
		return full
	}
	return UnknownLabel
}

// FullName joins first and second name.
func (r PlayerRecord) FullName() string {
	return strings.TrimSpace(r.FirstName + " " + r.SecondName)
}

// Team returns the team name or the sentinel when absent.
func (r PlayerRecord) Team() string {
	if team := strings.TrimSpace(r.TeamName); team != "" {
		return team
	}
	return UnknownLabel
}

func (r PlayerRecord) Validate() error {
	if r.PlayerID <= 0 {
		return NewMissingFieldError("player_id", "player record has no player id")
	}
	if r.Gameweek < 0 {
		return NewMalformedRecordError("gameweek", "gameweek must be >= 0")
	}
	if r.Minutes < 0 {
		return NewMalformedRecordError("minutes", "minutes must be >= 0")
	}

	return nil
}
