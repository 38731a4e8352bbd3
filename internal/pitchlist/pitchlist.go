// Package pitchlist loads custom drill profiles from text files.
//
// Each non-empty line holds a pitch in scientific notation, optionally
// followed by a clef and the answer label:
//
//	B3 treble G2
//	C3 bass
//	# comments start with '#'
package pitchlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/verte-zerg/tuinote/internal/pitch"
)

// MaxLabel is the longest answer label accepted.
const MaxLabel = 4

// LoadProfile reads a pitch list from path and names the profile after the file.
func LoadProfile(path string) (*pitch.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only pitch list.
			_ = cerr
		}
	}()

	pitches, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return pitch.NewTable(name, pitches), nil
}

// noteHead identifies a drawn note regardless of its answer label.
type noteHead struct {
	letter pitch.Letter
	octave int
	clef   pitch.Clef
}

// Parse reads pitch lines from r. Repeated note heads are kept once; a note
// head listed again with a different label is an error.
func Parse(r io.Reader) ([]pitch.Pitch, error) {
	var pitches []pitch.Pitch
	seen := map[noteHead]string{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		p, err := parseLine(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		head := noteHead{letter: p.Letter, octave: p.Octave, clef: p.Clef}
		if label, ok := seen[head]; ok {
			if label != p.Label {
				return nil, fmt.Errorf("line %d: %s %s already labelled %q", lineNo, p, p.Clef, label)
			}
			continue
		}
		seen[head] = p.Label
		pitches = append(pitches, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(pitches) == 0 {
		return nil, fmt.Errorf("pitch list is empty")
	}
	return pitches, nil
}

func parseLine(fields []string) (pitch.Pitch, error) {
	if len(fields) > 3 {
		return pitch.Pitch{}, fmt.Errorf("too many fields")
	}
	clef := pitch.Treble
	if len(fields) >= 2 {
		c, err := pitch.ParseClef(fields[1])
		if err != nil {
			return pitch.Pitch{}, err
		}
		clef = c
	}
	p, err := pitch.ParsePitch(fields[0], clef)
	if err != nil {
		return pitch.Pitch{}, err
	}
	if len(fields) == 3 {
		label := strings.ToUpper(fields[2])
		if len([]rune(label)) > MaxLabel {
			return pitch.Pitch{}, fmt.Errorf("label %q longer than %d characters", fields[2], MaxLabel)
		}
		p = p.WithLabel(label)
	}
	return p, nil
}
