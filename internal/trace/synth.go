// Synthetic trace generation using layered simplex noise. Produces smooth
// wander paths with occasional tracking dropouts, in the same file formats
// the observation pipeline records.

package trace

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/classroomsim/internal/geom"
)

// SynthConfig controls synthetic trace generation.
type SynthConfig struct {
	Seed       int64
	Teachers   int
	Kids       int
	Seconds    int     // class period length
	RoomWidth  float64 // meters
	RoomDepth  float64 // meters
	BoxSize    float64 // occupant box edge length, meters
	AbsentRate float64 // approximate fraction of occupant-seconds untracked
}

// DefaultSynthConfig returns a classroom-sized configuration.
func DefaultSynthConfig() SynthConfig {
	return SynthConfig{
		Seed:       1,
		Teachers:   2,
		Kids:       24,
		Seconds:    4 * 3600,
		RoomWidth:  9.0,
		RoomDepth:  7.0,
		BoxSize:    0.5,
		AbsentRate: 0.05,
	}
}

// Synthesize generates a trace of smoothly wandering occupants. Three
// independent noise layers drive position, orientation, and tracking
// dropouts, so the result is deterministic for a given seed.
func Synthesize(cfg SynthConfig) (Info, *Trace) {
	posNoise := opensimplex.NewNormalized(cfg.Seed)
	angNoise := opensimplex.NewNormalized(cfg.Seed + 1)
	gapNoise := opensimplex.NewNormalized(cfg.Seed + 2)

	info := Info{Teachers: cfg.Teachers, Kids: cfg.Kids}
	total := info.Total()
	tr := &Trace{Frames: make([]Frame, 0, cfg.Seconds)}

	for t := 0; t < cfg.Seconds; t++ {
		frame := make(Frame, total)
		for occ := 0; occ < total; occ++ {
			// Each occupant samples a distinct noise row; slow time
			// frequency keeps per-second motion plausible.
			row := float64(occ) * 17.31
			x := octaveNoise(posNoise, float64(t)*0.002, row, 3, 1.0, 0.5) * cfg.RoomWidth
			y := octaveNoise(posNoise, float64(t)*0.002, row+8.07, 3, 1.0, 0.5) * cfg.RoomDepth
			ang := octaveNoise(angNoise, float64(t)*0.004, row, 2, 1.0, 0.5) * 2 * math.Pi

			if gapNoise.Eval2(float64(t)*0.01, row) < cfg.AbsentRate {
				continue
			}

			hx := math.Cos(ang) * cfg.BoxSize / 2
			hy := math.Sin(ang) * cfg.BoxSize / 2
			frame[occ] = geom.Box{
				LeftX:  x + hx,
				LeftY:  y + hy,
				RightX: x - hx,
				RightY: y - hy,
			}
		}
		tr.Frames = append(tr.Frames, frame)
	}
	return info, tr
}

// octaveNoise layers multiple noise octaves for natural-looking drift.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	var total, amplitude, maxValue float64
	amplitude = 1
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxValue
}

// WriteFiles writes the info and trace files into dir using the observation
// pipeline's formats, so synthesized data is consumable by Load and
// LoadInfo.
func WriteFiles(dir string, info Info, tr *Trace) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create trace dir: %w", err)
	}

	infoPath := filepath.Join(dir, "info.dat")
	if err := os.WriteFile(infoPath, []byte(fmt.Sprintf("%d %d\n", info.Teachers, info.Kids)), 0644); err != nil {
		return fmt.Errorf("write info: %w", err)
	}

	dataPath := filepath.Join(dir, "all_xy.csv")
	f, err := os.Create(dataPath)
	if err != nil {
		return fmt.Errorf("create trace file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	total := info.Total()
	for t, frame := range tr.Frames {
		w.WriteString(strconv.Itoa(t))
		for occ := 0; occ < total; occ++ {
			box, ok := frame[occ]
			if !ok {
				box = geom.Absent
			}
			fmt.Fprintf(w, ",%.4f,%.4f,%.4f,%.4f", box.LeftX, box.LeftY, box.RightX, box.RightY)
		}
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush trace file: %w", err)
	}
	return nil
}
