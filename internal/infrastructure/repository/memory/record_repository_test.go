package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/fpl-analyst/internal/domain/artifact"
	"github.com/riskibarqy/fpl-analyst/internal/domain/gameweek"
)

func TestRecordRepository_ReturnsCopies(t *testing.T) {
	t.Parallel()

	repo := NewRecordRepository([]gameweek.PlayerRecord{{PlayerID: 1, TotalPoints: 3}})
	ctx := context.Background()

	got, err := repo.ListPlayerRecords(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got[0].TotalPoints = 99

	again, _ := repo.ListPlayerRecords(ctx)
	if again[0].TotalPoints != 3 {
		t.Fatalf("expected stored record to be unchanged, got %d", again[0].TotalPoints)
	}

	if err := repo.ReplacePlayerRecords(ctx, nil); err != nil {
		t.Fatalf("replace: %v", err)
	}
	empty, _ := repo.ListPlayerRecords(ctx)
	if len(empty) != 0 {
		t.Fatalf("expected no records after replace, got %d", len(empty))
	}
}

func TestArtifactRepository(t *testing.T) {
	t.Parallel()

	repo := NewArtifactRepository()
	ctx := context.Background()

	if err := repo.Save(ctx, []artifact.Artifact{{Key: artifact.Teams, Payload: []string{"Arsenal"}}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	var teams []string
	if err := repo.Load(ctx, artifact.Teams, &teams); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(teams) != 1 || teams[0] != "Arsenal" {
		t.Fatalf("unexpected teams: %v", teams)
	}
	if err := repo.Load(ctx, artifact.Players, &teams); !errors.Is(err, artifact.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
