package filestore

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/fpl-analyst/internal/domain/artifact"
)

type samplePayload struct {
	Name   string         `json:"name"`
	Scores map[string]int `json:"scores"`
}

func TestStore_SaveLoad(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)
	ctx := context.Background()
	key := artifact.TopPerformer("goal_leaders")

	in := samplePayload{Name: "goal_leaders", Scores: map[string]int{"b": 2, "a": 1}}
	if err := store.Save(ctx, []artifact.Artifact{{Key: key, Payload: in}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "top_performers", "goal_leaders.json")); err != nil {
		t.Fatalf("expected artifact file: %v", err)
	}

	var out samplePayload
	if err := store.Load(ctx, key, &out); err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Name != in.Name || out.Scores["a"] != 1 || out.Scores["b"] != 2 {
		t.Fatalf("unexpected payload: %+v", out)
	}

	ok, err := store.Exists(ctx, key)
	if err != nil || !ok {
		t.Fatalf("expected artifact to exist, ok=%v err=%v", ok, err)
	}
}

func TestStore_SaveIsDeterministic(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)
	ctx := context.Background()
	payload := map[string]int{"z": 1, "a": 2, "m": 3}

	read := func() []byte {
		if err := store.Save(ctx, []artifact.Artifact{{Key: artifact.Run, Payload: payload}}); err != nil {
			t.Fatalf("save: %v", err)
		}
		raw, err := os.ReadFile(filepath.Join(root, "meta", "run.json"))
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		return raw
	}

	first := read()
	second := read()
	if !bytes.Equal(first, second) {
		t.Fatalf("expected identical bytes across saves")
	}
	if bytes.Index(first, []byte(`"a"`)) > bytes.Index(first, []byte(`"z"`)) {
		t.Fatalf("expected sorted map keys, got %s", first)
	}
}

func TestStore_Missing(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	ctx := context.Background()

	var out samplePayload
	if err := store.Load(ctx, artifact.Players, &out); !errors.Is(err, artifact.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	ok, err := store.Exists(ctx, artifact.Players)
	if err != nil || ok {
		t.Fatalf("expected missing artifact, ok=%v err=%v", ok, err)
	}
}

func TestStore_InvalidKey(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	bad := artifact.Key{Group: artifact.GroupSeason, Name: "../escape"}
	err := store.Save(context.Background(), []artifact.Artifact{{Key: bad, Payload: 1}})
	if !errors.Is(err, artifact.ErrInvalidKey) {
		t.Fatalf("expected invalid key error, got %v", err)
	}
}
