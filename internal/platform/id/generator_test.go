package id

import "testing"

func TestSequenceGenerator(t *testing.T) {
	t.Parallel()

	g := NewSequenceGenerator()

	if got := g.NewID("card"); got != "card-0001" {
		t.Fatalf("first id = %s, want card-0001", got)
	}
	if got := g.NewID("card"); got != "card-0002" {
		t.Fatalf("second id = %s, want card-0002", got)
	}

	// Prefixes keep independent sequences.
	if got := g.NewID("team"); got != "team-0001" {
		t.Fatalf("team id = %s, want team-0001", got)
	}

	g.Reset()
	if got := g.NewID("card"); got != "card-0001" {
		t.Fatalf("post-reset id = %s, want card-0001", got)
	}
}
