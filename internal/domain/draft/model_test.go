package draft

import "testing"

func TestSnakePosition(t *testing.T) {
	t.Parallel()

	const teams = 30

	// Even (zero-based) rounds run in lottery order.
	for pick := 0; pick < teams; pick++ {
		if got := SnakePosition(0, pick, teams); got != pick {
			t.Fatalf("round 0 pick %d position = %d, want %d", pick, got, pick)
		}
	}

	// Odd rounds reverse.
	if got := SnakePosition(1, 0, teams); got != teams-1 {
		t.Fatalf("round 1 first pick position = %d, want %d", got, teams-1)
	}
	if got := SnakePosition(1, teams-1, teams); got != 0 {
		t.Fatalf("round 1 last pick position = %d, want 0", got)
	}

	// The team picking last in a forward round picks first in the next.
	if SnakePosition(0, teams-1, teams) != SnakePosition(1, 0, teams) {
		t.Fatal("snake turn should keep the same team on back-to-back picks")
	}
	if SnakePosition(2, 0, teams) != 0 {
		t.Fatal("round 2 should run forward again")
	}
}

func TestLetterFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score float64
		want  string
	}{
		{95, "A+"},
		{92, "A+"},
		{91.9, "A"},
		{88, "A"},
		{84, "A-"},
		{80, "B+"},
		{76, "B"},
		{72, "B-"},
		{68, "C+"},
		{64, "C"},
		{60, "C-"},
		{55, "D"},
		{54.9, "F"},
		{0, "F"},
	}

	for _, tc := range cases {
		if got := LetterFor(tc.score); got != tc.want {
			t.Fatalf("LetterFor(%.1f) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestPickValidate(t *testing.T) {
	t.Parallel()

	valid := Pick{Season: 1, Round: 1, Overall: 1, TeamID: "team-001", GMName: "Mara Voss", CardID: "card-0001"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid pick rejected: %v", err)
	}

	p := valid
	p.Season = 0
	if err := p.Validate(); err == nil {
		t.Fatal("expected error for zero season")
	}

	p = valid
	p.Overall = 0
	if err := p.Validate(); err == nil {
		t.Fatal("expected error for zero overall")
	}

	p = valid
	p.CardID = ""
	if err := p.Validate(); err == nil {
		t.Fatal("expected error for missing card id")
	}
}
