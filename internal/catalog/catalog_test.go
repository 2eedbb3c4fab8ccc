package catalog

import "testing"

// TestLoadEmbedded verifies the embedded data parses and every focus the
// generator knows about is present.
func TestLoadEmbedded(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	for _, focus := range []string{"force", "hypertrophy", "power", "endurance", "crossfit", "hyrox"} {
		splits := c.SplitNames(focus)
		if len(splits) != 5 {
			t.Errorf("%s splits = %d, want 5", focus, len(splits))
		}
		for _, split := range splits {
			if len(c.Exercises(focus, split)) == 0 {
				t.Errorf("%s/%s has no exercises", focus, split)
			}
		}
	}
}

// TestHyroxSplitNames pins the five Hyrox split names and their order.
func TestHyroxSplitNames(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{
		"Sleds & Force",
		"Endurance Fonctionnelle",
		"Ergs & Puissance",
		"Jambes Compromises",
		"Simulation Course",
	}
	got := c.SplitNames("hyrox")
	if len(got) != len(want) {
		t.Fatalf("hyrox splits = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("split[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// TestUnknownEntriesDegrade verifies missing focus/split combinations
// yield empty results rather than errors.
func TestUnknownEntriesDegrade(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := c.SplitNames("swimming"); got != nil {
		t.Errorf("unknown focus splits = %v, want nil", got)
	}
	if got := c.Exercises("hyrox", "Natation"); got != nil {
		t.Errorf("unknown split exercises = %v, want nil", got)
	}
}
