package staff

import (
	"reflect"
	"testing"

	"github.com/verte-zerg/tuinote/internal/pitch"
)

func mustConfig(t *testing.T, c pitch.Clef, scale Scale, stemDown int) Config {
	t.Helper()
	cfg, err := NewConfig(c, scale, stemDown)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	return cfg
}

func TestComputeNoteY(t *testing.T) {
	treble := mustConfig(t, pitch.Treble, Compact, 5)
	bass := mustConfig(t, pitch.Bass, Compact, 3)
	tests := []struct {
		name string
		p    pitch.Pitch
		cfg  Config
		want float64
	}{
		{"E4 on bottom treble line", pitch.New(pitch.E, 4, pitch.Treble), treble, 120},
		{"F4 in first space", pitch.New(pitch.F, 4, pitch.Treble), treble, 115},
		{"F5 on top treble line", pitch.New(pitch.F, 5, pitch.Treble), treble, 80},
		{"C4 below treble", pitch.New(pitch.C, 4, pitch.Treble), treble, 130},
		{"A5 above treble", pitch.New(pitch.A, 5, pitch.Treble), treble, 70},
		{"G2 on bottom bass line", pitch.New(pitch.G, 2, pitch.Bass), bass, 120},
		{"A3 on top bass line", pitch.New(pitch.A, 3, pitch.Bass), bass, 80},
		{"C4 above bass", pitch.New(pitch.C, 4, pitch.Bass), bass, 70},
		{"E2 below bass", pitch.New(pitch.E, 2, pitch.Bass), bass, 130},
	}
	for _, tt := range tests {
		got := Compute(tt.p, tt.cfg)
		if got.NoteY != tt.want {
			t.Errorf("%s: noteY = %v, want %v", tt.name, got.NoteY, tt.want)
		}
	}
}

func TestComputeLedgers(t *testing.T) {
	treble := mustConfig(t, pitch.Treble, Compact, 5)
	tests := []struct {
		p    pitch.Pitch
		want []float64
	}{
		{pitch.New(pitch.E, 4, pitch.Treble), nil},
		{pitch.New(pitch.D, 4, pitch.Treble), nil},
		{pitch.New(pitch.C, 4, pitch.Treble), []float64{130}},
		{pitch.New(pitch.B, 3, pitch.Treble), []float64{130}},
		{pitch.New(pitch.A, 3, pitch.Treble), []float64{130, 140}},
		{pitch.New(pitch.G, 3, pitch.Treble), []float64{130, 140}},
		{pitch.New(pitch.F, 5, pitch.Treble), nil},
		{pitch.New(pitch.G, 5, pitch.Treble), nil},
		{pitch.New(pitch.A, 5, pitch.Treble), []float64{70}},
		{pitch.New(pitch.B, 5, pitch.Treble), []float64{70}},
		{pitch.New(pitch.C, 6, pitch.Treble), []float64{70, 60}},
	}
	for _, tt := range tests {
		got := Compute(tt.p, treble)
		if len(got.Ledgers) != len(tt.want) {
			t.Fatalf("%s: ledgers = %v, want %v", tt.p, got.Ledgers, tt.want)
		}
		for i := range tt.want {
			if got.Ledgers[i] != tt.want[i] {
				t.Fatalf("%s: ledgers = %v, want %v", tt.p, got.Ledgers, tt.want)
			}
		}
	}
}

func TestLedgerCountMonotonic(t *testing.T) {
	cfg := mustConfig(t, pitch.Bass, Large, 3)
	prev := 0
	for v := cfg.Bottom.Value(); v >= cfg.Bottom.Value()-12; v-- {
		p := pitch.New(pitch.Letter(v%pitch.LettersPerOctave), v/pitch.LettersPerOctave, pitch.Bass)
		n := len(Compute(p, cfg).Ledgers)
		if n < prev {
			t.Fatalf("ledger count decreased at %s: %d < %d", p, n, prev)
		}
		prev = n
	}
	if prev != 6 {
		t.Fatalf("expected 6 ledgers twelve steps below the staff, got %d", prev)
	}
}

func TestLedgersReachNote(t *testing.T) {
	cfg := mustConfig(t, pitch.Treble, Terminal, 5)
	for _, p := range pitch.Wide().Domain() {
		g := Compute(p, cfg)
		for i, y := range g.Ledgers {
			if y > cfg.StaffTop && y < cfg.StaffBottom() {
				t.Fatalf("%s: ledger %d inside staff at %v", p, i, y)
			}
		}
		if len(g.Ledgers) == 0 {
			continue
		}
		last := g.Ledgers[len(g.Ledgers)-1]
		diff := last - g.NoteY
		if diff < 0 {
			diff = -diff
		}
		if diff > cfg.LineGap/2 {
			t.Fatalf("%s: last ledger %v does not reach note %v", p, last, g.NoteY)
		}
	}
}

func TestStemDirection(t *testing.T) {
	treble := mustConfig(t, pitch.Treble, Large, 5)
	bass := mustConfig(t, pitch.Bass, Large, 3)

	up := Compute(pitch.New(pitch.B, 4, pitch.Treble), treble)
	if up.Stem.Down || up.Stem.Side != StemRight {
		t.Fatalf("B4 stem should point up on the right: %+v", up.Stem)
	}
	if up.StemEnd() != up.NoteY-60 {
		t.Fatalf("unexpected stem end %v", up.StemEnd())
	}
	down := Compute(pitch.New(pitch.C, 5, pitch.Treble), treble)
	if !down.Stem.Down || down.Stem.Side != StemLeft {
		t.Fatalf("C5 stem should point down on the left: %+v", down.Stem)
	}
	if down.StemEnd() != down.NoteY+60 {
		t.Fatalf("unexpected stem end %v", down.StemEnd())
	}
	if !Compute(pitch.New(pitch.C, 3, pitch.Bass), bass).Stem.Down {
		t.Fatalf("bass C3 stem should point down")
	}
	if Compute(pitch.New(pitch.B, 2, pitch.Bass), bass).Stem.Down {
		t.Fatalf("bass B2 stem should point up")
	}
	if up.Stem.Length != down.Stem.Length {
		t.Fatalf("stem length must not depend on pitch")
	}
}

func TestComputeIsPure(t *testing.T) {
	cfg := mustConfig(t, pitch.Treble, Compact, 5)
	p := pitch.New(pitch.C, 6, pitch.Treble)
	a := Compute(p, cfg)
	b := Compute(p, cfg)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("compute is not deterministic: %+v vs %+v", a, b)
	}
}

func TestClefY(t *testing.T) {
	treble := mustConfig(t, pitch.Treble, Compact, 5)
	bass := mustConfig(t, pitch.Bass, Compact, 3)
	p := pitch.New(pitch.C, 4, pitch.Treble)
	if got := Compute(p, treble).ClefY; got != 110 {
		t.Fatalf("treble clef y = %v", got)
	}
	if got := Compute(p.WithLabel("C"), bass).ClefY; got != 90 {
		t.Fatalf("bass clef y = %v", got)
	}
	if ys := treble.LineYs(); ys[0] != 80 || ys[4] != 120 {
		t.Fatalf("unexpected line ys %v", ys)
	}
}

func TestTerminalScaleFitsWideRange(t *testing.T) {
	cfg := mustConfig(t, pitch.Treble, Terminal, 5)
	if want := []float64{6, 8, 10, 12, 14}; !reflect.DeepEqual(cfg.LineYs(), want) {
		t.Fatalf("terminal line ys = %v, want %v", cfg.LineYs(), want)
	}
	top := Compute(pitch.New(pitch.C, 6, pitch.Treble), cfg)
	if top.NoteY != 2 || !reflect.DeepEqual(top.Ledgers, []float64{4, 2}) {
		t.Fatalf("C6 on terminal scale: y=%v ledgers=%v", top.NoteY, top.Ledgers)
	}
}

func TestNewConfigRejectsBadScale(t *testing.T) {
	if _, err := NewConfig(pitch.Treble, Scale{LineGap: 0}, 5); err == nil {
		t.Fatalf("expected error for zero line gap")
	}
	if _, err := LookupScale("huge"); err == nil {
		t.Fatalf("expected error for unknown scale")
	}
}
