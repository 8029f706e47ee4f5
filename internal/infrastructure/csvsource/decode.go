package csvsource

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fpl-analyst/internal/domain/gameweek"
)

// row is the validated shape of one CSV line before it becomes a record.
type row struct {
	Element     int64
	Gameweek    int     `validate:"gte=0"`
	Minutes     int     `validate:"gte=0,lte=200"`
	NowCost     int     `validate:"gte=0"`
	SelectedBy  float64 `validate:"gte=0,lte=100"`
	ElementType int     `validate:"gte=0,lte=4"`
}

// Decoder turns CSV bytes into gameweek records. Unknown columns are
// ignored; absent numeric columns read as zero.
type Decoder struct {
	validate *validator.Validate
}

func NewDecoder() *Decoder {
	return &Decoder{validate: validator.New()}
}

// Decode reads every line of r. The first line must be the header and must
// carry the element column.
func (d *Decoder) Decode(r io.Reader) ([]gameweek.PlayerRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if crerr.Is(err, io.EOF) {
		return nil, gameweek.NewEmptyInputError("csv has no header")
	}
	if err != nil {
		return nil, crerr.Wrap(err, "read csv header")
	}
	index := indexHeader(header)
	if _, ok := index[colElement]; !ok {
		return nil, gameweek.NewMissingFieldError(colElement, "csv header has no element column")
	}

	var out []gameweek.PlayerRecord
	line := 1
	for {
		fields, err := reader.Read()
		if crerr.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, gameweek.NewMalformedRecordError("", fmt.Sprintf("line %d: %v", line, err))
		}
		if blank(fields) {
			continue
		}

		rec, err := d.decodeRow(index, fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, rec)
	}

	if len(out) == 0 {
		return nil, gameweek.NewEmptyInputError("csv has no records")
	}
	return out, nil
}

func (d *Decoder) decodeRow(index map[string]int, fields []string) (gameweek.PlayerRecord, error) {
	p := fieldParser{index: index, fields: fields}

	if strings.TrimSpace(p.str(colElement)) == "" {
		return gameweek.PlayerRecord{}, gameweek.NewMissingFieldError(colElement, "player id is empty")
	}

	raw := row{
		Element:     int64(p.int(colElement)),
		Gameweek:    p.int(colGameweek),
		Minutes:     p.int(colMinutes),
		NowCost:     p.int(colNowCost),
		SelectedBy:  p.float(colSelectedBy),
		ElementType: p.int(colElementType),
	}
	if p.err != nil {
		return gameweek.PlayerRecord{}, p.err
	}
	if err := d.validate.Struct(raw); err != nil {
		return gameweek.PlayerRecord{}, malformedFromValidation(err)
	}

	position := gameweek.PositionFromElementType(raw.ElementType)
	if position == gameweek.PositionUnknown {
		position = gameweek.ParsePosition(p.str(colPositionName))
	}

	rec := gameweek.PlayerRecord{
		PlayerID:              raw.Element,
		WebName:               p.str(colWebName),
		FirstName:             p.str(colFirstName),
		SecondName:            p.str(colSecondName),
		TeamName:              p.str(colTeamName),
		Position:              position,
		Gameweek:              raw.Gameweek,
		Minutes:               raw.Minutes,
		TotalPoints:           p.int(colTotalPoints),
		Goals:                 p.int(colGoals),
		Assists:               p.int(colAssists),
		CleanSheets:           p.int(colCleanSheets),
		GoalsConceded:         p.int(colGoalsConceded),
		ExpectedGoals:         p.float(colXG),
		ExpectedAssists:       p.float(colXA),
		ExpectedCleanSheets:   p.float(colXCS),
		ExpectedGoalsConceded: p.float(colXGC),
		Shots:                 p.int(colShots),
		ShotsOnTarget:         p.int(colShotsOnTarget),
		KeyPasses:             p.int(colKeyPasses),
		Touches:               p.int(colTouches),
		Cost:                  raw.NowCost,
		Ownership:             raw.SelectedBy,
	}
	if p.err != nil {
		return gameweek.PlayerRecord{}, p.err
	}
	return rec, rec.Validate()
}

func malformedFromValidation(err error) error {
	var verrs validator.ValidationErrors
	if crerr.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return gameweek.NewMalformedRecordError(
			strings.ToLower(first.Field()),
			fmt.Sprintf("%s failed %s=%s (value %v)", first.Field(), first.Tag(), first.Param(), first.Value()),
		)
	}
	return gameweek.NewMalformedRecordError("", err.Error())
}

func indexHeader(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}
	return index
}

func blank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// fieldParser reads typed columns and keeps the first parse error.
type fieldParser struct {
	index  map[string]int
	fields []string
	err    error
}

func (p *fieldParser) str(col string) string {
	i, ok := p.index[col]
	if !ok || i >= len(p.fields) {
		return ""
	}
	return strings.TrimSpace(p.fields[i])
}

// int accepts integral floats such as "90.0" which spreadsheet exports emit.
func (p *fieldParser) int(col string) int {
	raw := p.str(col)
	if raw == "" {
		return 0
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		p.fail(col, raw)
		return 0
	}
	return int(f)
}

func (p *fieldParser) float(col string) float64 {
	raw := p.str(col)
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		p.fail(col, raw)
		return 0
	}
	return f
}

func (p *fieldParser) fail(col, raw string) {
	if p.err == nil {
		p.err = gameweek.NewMalformedRecordError(col, fmt.Sprintf("%s is not a number: %q", col, raw))
	}
}
