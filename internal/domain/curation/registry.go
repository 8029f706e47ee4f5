package curation

import (
	"fmt"
	"slices"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fpl-analyst/internal/domain/season"
	"github.com/sourcegraph/conc/panics"
)

var ErrDuplicateRecipe = crerr.New("duplicate recipe")

// Registry holds recipes in registration order.
type Registry struct {
	runners []Runner
	index   map[string]int
}

func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// DefaultRegistry registers every published recipe.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, runner := range []Runner{
		GoalLeaders().Runner(),
		ValuePlayers().Runner(),
		SeasonStars().Runner(),
		HiddenGems().Runner(),
		DifferentialPicks().Runner(),
		AssistProviders().Runner(),
		DefensiveLeaders().Runner(),
		Overperformers().Runner(),
		Underperformers().Runner(),
		SustainableScorers().Runner(),
	} {
		if err := r.Register(runner); err != nil {
			panic(err)
		}
	}
	return r
}

func (r *Registry) Register(runner Runner) error {
	if runner == nil {
		return fmt.Errorf("runner is required")
	}
	if _, exists := r.index[runner.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRecipe, runner.Name())
	}
	r.index[runner.Name()] = len(r.runners)
	r.runners = append(r.runners, runner)
	return nil
}

func (r *Registry) Get(name string) (Runner, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.runners[i], true
}

func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.runners))
	for _, runner := range r.runners {
		out = append(out, runner.Name())
	}
	return out
}

func (r *Registry) Runners() []Runner {
	return slices.Clone(r.runners)
}

// RunSafely executes a runner and converts a panic into an error together
// with an empty list of the same name, so one broken recipe never aborts
// unrelated ones.
func RunSafely(runner Runner, aggs []season.Aggregate) (List, error) {
	var list List
	var catcher panics.Catcher
	catcher.Try(func() {
		list = runner.Run(aggs)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		return Empty(runner.Name()), fmt.Errorf("recipe %s: %w", runner.Name(), recovered.AsError())
	}
	return list, nil
}

// Empty is the degraded result of a failed recipe.
func Empty(name string) List {
	return List{Name: name, Count: 0, Entries: []struct{}{}}
}
