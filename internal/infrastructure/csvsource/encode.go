package csvsource

import (
	"encoding/csv"
	"io"
	"strconv"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fpl-analyst/internal/domain/gameweek"
)

var elementTypes = map[gameweek.Position]int{
	gameweek.PositionGoalkeeper: 1,
	gameweek.PositionDefender:   2,
	gameweek.PositionMidfielder: 3,
	gameweek.PositionForward:    4,
}

// Encode writes records with the Header column order.
func Encode(w io.Writer, records []gameweek.PlayerRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return crerr.Wrap(err, "write csv header")
	}
	for _, r := range records {
		line := []string{
			strconv.FormatInt(r.PlayerID, 10),
			r.WebName,
			r.FirstName,
			r.SecondName,
			r.TeamName,
			strconv.Itoa(elementTypes[r.Position]),
			r.Position.Name(),
			strconv.Itoa(r.Gameweek),
			strconv.Itoa(r.Minutes),
			strconv.Itoa(r.TotalPoints),
			strconv.Itoa(r.Goals),
			strconv.Itoa(r.Assists),
			strconv.Itoa(r.CleanSheets),
			strconv.Itoa(r.GoalsConceded),
			formatFloat(r.ExpectedGoals),
			formatFloat(r.ExpectedAssists),
			formatFloat(r.ExpectedCleanSheets),
			formatFloat(r.ExpectedGoalsConceded),
			strconv.Itoa(r.Shots),
			strconv.Itoa(r.ShotsOnTarget),
			strconv.Itoa(r.KeyPasses),
			strconv.Itoa(r.Touches),
			strconv.Itoa(r.Cost),
			formatFloat(r.Ownership),
		}
		if err := writer.Write(line); err != nil {
			return crerr.Wrapf(err, "write csv record player=%d gameweek=%d", r.PlayerID, r.Gameweek)
		}
	}
	writer.Flush()
	return crerr.Wrap(writer.Error(), "flush csv")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
