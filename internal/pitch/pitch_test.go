package pitch

import "testing"

func TestParsePitch(t *testing.T) {
	tests := []struct {
		in      string
		want    Pitch
		wantErr bool
	}{
		{in: "C4", want: New(C, 4, Treble)},
		{in: " g3 ", want: New(G, 3, Treble)},
		{in: "B5", want: New(B, 5, Treble)},
		{in: "H4", wantErr: true},
		{in: "C", wantErr: true},
		{in: "Cx", wantErr: true},
		{in: "C12", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParsePitch(tt.in, Treble)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParsePitch(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParsePitch(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParsePitch(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestValueAndMIDI(t *testing.T) {
	tests := []struct {
		p     Pitch
		value int
		midi  uint8
	}{
		{New(C, 4, Treble), 28, 60},
		{New(E, 4, Treble), 30, 64},
		{New(G, 2, Bass), 18, 43},
		{New(A, 4, Treble), 33, 69},
		{New(B, 3, Treble), 27, 59},
	}
	for _, tt := range tests {
		if got := tt.p.Value(); got != tt.value {
			t.Fatalf("%s value: got %d, want %d", tt.p, got, tt.value)
		}
		if got := tt.p.MIDI(); got != tt.midi {
			t.Fatalf("%s midi: got %d, want %d", tt.p, got, tt.midi)
		}
	}
}

func TestParseClef(t *testing.T) {
	if c, err := ParseClef("Bass"); err != nil || c != Bass {
		t.Fatalf("expected bass, got %v (%v)", c, err)
	}
	if c, err := ParseClef("treble"); err != nil || c != Treble {
		t.Fatalf("expected treble, got %v (%v)", c, err)
	}
	if _, err := ParseClef("alto"); err == nil {
		t.Fatalf("expected error for alto")
	}
}

func TestDescribe(t *testing.T) {
	out := Describe(NewTable("x", []Pitch{New(D, 4, Treble).WithLabel("G4"), New(C, 4, Treble)}))
	if out != "C4 D4=G4" {
		t.Fatalf("unexpected description: %q", out)
	}
}
