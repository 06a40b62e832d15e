package theme

import "testing"

func TestCycleCoversAllNamedColors(t *testing.T) {
	for _, name := range Cycle {
		if _, ok := colors[name]; !ok {
			t.Fatalf("cycle entry %q has no color mapping", name)
		}
	}
}

func TestColorDefaultsForUnknown(t *testing.T) {
	if Color("mauve") != colors["lightblue"] {
		t.Fatal("unknown color should fall back to lightblue")
	}
}

func TestIndexUnknownIsZero(t *testing.T) {
	if Index("mauve") != 0 {
		t.Fatal("unknown scheme should start the cycle at 0")
	}
	if Index("cyan") != 1 {
		t.Fatalf("cyan index: %d", Index("cyan"))
	}
}

func TestAtWraps(t *testing.T) {
	n := len(Cycle)
	if At(n) != At(0) {
		t.Fatal("cycle should wrap at the end")
	}
	p := At(n - 1)
	if p.Highlight != Color(Cycle[0]) {
		t.Fatal("highlight should wrap to the first scheme")
	}
}
