// Package entropy mints seed material for simulation batches and derives
// decorrelated per-task seeds from it. Falls back to the wall clock if the
// operating system's entropy source is unavailable.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// BatchSeed returns a fresh non-negative seed from crypto/rand. Used when
// the configuration does not pin one.
func BatchSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Seeding must not fail the batch.
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(buf[:]) &^ (1 << 63))
}

// TaskSeed derives an independent seed for one (zero patient, repetition)
// task from the batch seed. A SplitMix64 finalizer keeps adjacent task ids
// from producing correlated generator states.
func TaskSeed(batchSeed int64, zeroPatient, rep int) int64 {
	x := uint64(batchSeed)
	x += 0x9e3779b97f4a7c15 * (uint64(zeroPatient) + 1)
	x += 0xd1b54a32d192ed03 * (uint64(rep) + 1)
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x &^ (1 << 63))
}
