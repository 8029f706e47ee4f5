package curation

import (
	"slices"

	"github.com/riskibarqy/fpl-analyst/internal/domain/season"
)

// Order is the sort direction of a recipe's score.
type Order int

const (
	Descending Order = iota
	Ascending
)

// Recipe is a named filter, score, sort and cap pipeline over season
// aggregates. Project turns a selected aggregate and its score into the
// entry shape the recipe's consumer reads.
type Recipe[E any] struct {
	Name    string
	Filter  func(season.Aggregate) bool
	Score   func(season.Aggregate) float64
	Order   Order
	Limit   int
	Project func(season.Aggregate, float64) E
}

type scored struct {
	agg   season.Aggregate
	score float64
}

// Select runs the recipe. Rows with equal scores keep their input order and
// the cap keeps the first Limit rows after sorting. No qualifying rows
// yields an empty, non-nil slice.
func (r Recipe[E]) Select(aggs []season.Aggregate) []E {
	rows := make([]scored, 0, len(aggs))
	for _, a := range aggs {
		if r.Filter != nil && !r.Filter(a) {
			continue
		}
		score := 0.0
		if r.Score != nil {
			score = r.Score(a)
		}
		rows = append(rows, scored{agg: a, score: score})
	}

	slices.SortStableFunc(rows, func(a, b scored) int {
		switch {
		case a.score == b.score:
			return 0
		case (a.score > b.score) == (r.Order == Descending):
			return -1
		default:
			return 1
		}
	})

	if r.Limit > 0 && len(rows) > r.Limit {
		rows = rows[:r.Limit]
	}

	out := make([]E, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.Project(row.agg, row.score))
	}
	return out
}

// List is the named result of one recipe run.
type List struct {
	Name    string `json:"name"`
	Count   int    `json:"count"`
	Entries any    `json:"entries"`
}

// Runner erases a recipe's entry type so heterogeneous recipes can share a
// registry.
type Runner interface {
	Name() string
	Run(aggs []season.Aggregate) List
}

// Runner wraps the recipe for registration.
func (r Recipe[E]) Runner() Runner {
	return recipeRunner[E]{recipe: r}
}

type recipeRunner[E any] struct {
	recipe Recipe[E]
}

func (r recipeRunner[E]) Name() string {
	return r.recipe.Name
}

func (r recipeRunner[E]) Run(aggs []season.Aggregate) List {
	entries := r.recipe.Select(aggs)
	return List{Name: r.recipe.Name, Count: len(entries), Entries: entries}
}
