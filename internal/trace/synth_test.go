package trace

import (
	"testing"
)

func smallSynthConfig() SynthConfig {
	cfg := DefaultSynthConfig()
	cfg.Teachers = 1
	cfg.Kids = 3
	cfg.Seconds = 60
	return cfg
}

func TestSynthesizeDeterministic(t *testing.T) {
	cfg := smallSynthConfig()

	infoA, trA := Synthesize(cfg)
	infoB, trB := Synthesize(cfg)

	if infoA != infoB {
		t.Fatalf("info differs across identical seeds: %+v vs %+v", infoA, infoB)
	}
	if len(trA.Frames) != len(trB.Frames) {
		t.Fatalf("frame counts differ: %d vs %d", len(trA.Frames), len(trB.Frames))
	}
	for i := range trA.Frames {
		if len(trA.Frames[i]) != len(trB.Frames[i]) {
			t.Fatalf("frame %d sizes differ", i)
		}
		for occ, box := range trA.Frames[i] {
			if trB.Frames[i][occ] != box {
				t.Fatalf("frame %d occupant %d differs", i, occ)
			}
		}
	}
}

func TestSynthesizeWithinRoom(t *testing.T) {
	cfg := smallSynthConfig()
	info, tr := Synthesize(cfg)

	if tr.ClassSeconds() != cfg.Seconds {
		t.Fatalf("ClassSeconds = %d, want %d", tr.ClassSeconds(), cfg.Seconds)
	}

	margin := cfg.BoxSize
	for i, frame := range tr.Frames {
		for occ, box := range frame {
			if occ < 0 || occ >= info.Total() {
				t.Fatalf("frame %d holds unknown occupant %d", i, occ)
			}
			cx, cy := box.Center()
			if cx < -margin || cx > cfg.RoomWidth+margin ||
				cy < -margin || cy > cfg.RoomDepth+margin {
				t.Fatalf("frame %d occupant %d center (%v, %v) outside the room", i, occ, cx, cy)
			}
			if box.IsAbsent() {
				t.Fatalf("frame %d occupant %d recorded with a sentinel box", i, occ)
			}
		}
	}
}

func TestWriteFilesRoundTrip(t *testing.T) {
	cfg := smallSynthConfig()
	info, tr := Synthesize(cfg)

	dir := t.TempDir()
	if err := WriteFiles(dir, info, tr); err != nil {
		t.Fatal(err)
	}

	gotInfo, err := LoadInfo(dir + "/info.dat")
	if err != nil {
		t.Fatal(err)
	}
	if gotInfo != info {
		t.Fatalf("info round trip = %+v, want %+v", gotInfo, info)
	}

	gotTr, err := Load(dir + "/all_xy.csv")
	if err != nil {
		t.Fatal(err)
	}
	if gotTr.ClassSeconds() != tr.ClassSeconds() {
		t.Fatalf("trace round trip = %d frames, want %d", gotTr.ClassSeconds(), tr.ClassSeconds())
	}
	for i := range tr.Frames {
		if len(gotTr.Frames[i]) != len(tr.Frames[i]) {
			t.Fatalf("frame %d: %d occupants after round trip, want %d",
				i, len(gotTr.Frames[i]), len(tr.Frames[i]))
		}
	}
}
