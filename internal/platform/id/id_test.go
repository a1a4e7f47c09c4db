package id_test

import (
	"testing"

	"github.com/google/uuid"

	"healthlog/internal/platform/id"
)

func TestUUIDGeneratesDistinctParsableIDs(t *testing.T) {
	t.Parallel()
	gen := id.UUID{}
	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		v := gen.New()
		if _, err := uuid.Parse(v); err != nil {
			t.Fatalf("id %q is not a uuid: %v", v, err)
		}
		if _, dup := seen[v]; dup {
			t.Fatalf("duplicate id %q", v)
		}
		seen[v] = struct{}{}
	}
}

func TestSequenceRepeatsLast(t *testing.T) {
	t.Parallel()
	seq := &id.Sequence{IDs: []string{"a", "b"}}
	got := []string{seq.New(), seq.New(), seq.New()}
	if got[0] != "a" || got[1] != "b" || got[2] != "b" {
		t.Fatalf("unexpected sequence: %v", got)
	}
}
