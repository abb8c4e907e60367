// Package trace provides the recorded classroom observation data: occupancy
// counts, per-second location frames, parsers for the observation file
// formats, and a synthetic trace generator.
package trace

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/talgya/classroomsim/internal/geom"
)

// Frame maps occupant index to its recorded box for one sample instant.
// Absent occupants carry no entry and are skipped by the pairwise sweep.
type Frame map[int]geom.Box

// Trace is one class period of recorded frames, one per second, replayed
// once per simulated day.
type Trace struct {
	Frames []Frame
}

// ClassSeconds returns the length of the recorded class period in seconds.
func (t *Trace) ClassSeconds() int {
	return len(t.Frames)
}

// Info holds the occupancy counts of one observed classroom. Teacher
// indices occupy the low range [0, Teachers); kid indices follow.
type Info struct {
	Teachers int
	Kids     int
}

// Total returns the number of tracked occupants.
func (in Info) Total() int {
	return in.Teachers + in.Kids
}

// TeacherIndices returns the occupant indices assigned to teachers.
func (in Info) TeacherIndices() []int {
	idx := make([]int, in.Teachers)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// KidIndices returns the occupant indices assigned to kids. Only these are
// eligible to seed a run as the zero patient.
func (in Info) KidIndices() []int {
	idx := make([]int, in.Kids)
	for i := range idx {
		idx[i] = in.Teachers + i
	}
	return idx
}

// LoadInfo reads an observation info file. The counts live on the last
// non-empty line as two whitespace-separated numbers: teachers, kids.
func LoadInfo(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("open info: %w", err)
	}
	defer f.Close()

	var last string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			last = line
		}
	}
	if err := sc.Err(); err != nil {
		return Info{}, fmt.Errorf("read info: %w", err)
	}
	if last == "" {
		return Info{}, fmt.Errorf("info file %s is empty", path)
	}

	fields := strings.Fields(last)
	if len(fields) < 2 {
		return Info{}, fmt.Errorf("info line %q: want 2 fields", last)
	}
	teachers, err := parseCount(fields[0])
	if err != nil {
		return Info{}, fmt.Errorf("teacher count: %w", err)
	}
	kids, err := parseCount(fields[1])
	if err != nil {
		return Info{}, fmt.Errorf("kid count: %w", err)
	}
	return Info{Teachers: teachers, Kids: kids}, nil
}

// parseCount accepts the float-formatted integers the observation pipeline
// emits ("28.0").
func parseCount(s string) (int, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// Load reads an observation trace file. Each line is one sample instant: a
// leading timestamp field, then four comma-separated coordinates per
// occupant in index order. Samples with a -1 sentinel coordinate mark the
// occupant absent for that instant and produce no frame entry.
func Load(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()

	tr := &Trace{}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		frame, err := parseFrame(line)
		if err != nil {
			return nil, fmt.Errorf("trace line %d: %w", lineNo, err)
		}
		tr.Frames = append(tr.Frames, frame)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	if len(tr.Frames) == 0 {
		return nil, fmt.Errorf("trace file %s holds no frames", path)
	}
	return tr, nil
}

func parseFrame(line string) (Frame, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 1 {
		return nil, fmt.Errorf("no fields")
	}
	coords := fields[1:] // drop the timestamp field
	if len(coords)%4 != 0 {
		return nil, fmt.Errorf("%d coordinates, want a multiple of 4", len(coords))
	}

	frame := make(Frame, len(coords)/4)
	for i := 0; i+3 < len(coords); i += 4 {
		var vals [4]float64
		for j := 0; j < 4; j++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(coords[i+j]), 64)
			if err != nil {
				return nil, fmt.Errorf("occupant %d coordinate %d: %w", i/4, j, err)
			}
			vals[j] = v
		}
		box := geom.Box{LeftX: vals[0], LeftY: vals[1], RightX: vals[2], RightY: vals[3]}
		if box.IsAbsent() {
			continue
		}
		frame[i/4] = box
	}
	return frame, nil
}
