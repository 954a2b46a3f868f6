// Package mixhash implements the fixed three-lane mixing hash used both
// to derive BuilderCache keys and to checksum a persisted packed DFA. The
// constants and mixing steps are part of the cache-key format: keys must
// be byte-stable across builds and processes, so nothing here may be
// tuned for distribution quality.
package mixhash

import "math/bits"

const (
	c1 = 0x357BD1113171B1F2 ^ 0xC6BC279692B5CC83
	c2 = 0xCAFEBEEF1337FECA ^ 0xC6BC279692B5CC83
	c3 = 0xBABE42DEEDBEEFEE ^ 0xC6BC279692B5CC83

	z0Base   = 0x632BE59BD9B4E019
	goldenGamma = 0x9E3779B97F4A7C15
	finalMul    = 0xD0E89D2D311E289F
	rotMixA     = 0xC6BC279692B5CC83
	rotMixB     = 0x9E3779B97F4A7C15
)

// Alphabet is the base-32 alphabet cache keys and checksums are rendered
// in.
const Alphabet = "0123456789abcdefghijklmnopqrstuv"

// State is an incremental three-lane mixer. The zero value is not usable;
// construct with New.
type State struct {
	z1, z2, z3 uint64
	r1, r2, r3 uint64
}

// New returns a fresh mixer with the fixed initial lane registers (r1=7,
// r2=127, r3=421) and per-lane seeds z_i = z0Base + c_i.
// The seed additions run on the struct fields rather than as constant
// expressions: z0Base + c1 wraps past 2^64, which Go's constant arithmetic
// rejects but the mixer's modular arithmetic requires.
func New() *State {
	s := &State{
		z1: z0Base,
		z2: z0Base,
		z3: z0Base,
		r1: 7,
		r2: 127,
		r3: 421,
	}
	s.z1 += c1
	s.z2 += c2
	s.z3 += c3
	return s
}

// WriteUint64 folds one 64-bit input word into all three lanes.
func (s *State) WriteUint64(d uint64) {
	s.z1 += (d + goldenGamma) * finalMul
	s.r1 ^= s.z1 * c1

	s.z2 += (d + goldenGamma) * finalMul
	s.r2 ^= s.z2 * c2

	s.z3 += (d + goldenGamma) * finalMul
	s.r3 ^= s.z3 * c3
}

// WriteBytes folds a byte slice in as successive big-endian 64-bit words,
// zero-padding the final partial word. Used to mix variable-length data
// (strings, pattern lists) into the same three lanes as WriteUint64.
func (s *State) WriteBytes(b []byte) {
	for len(b) > 0 {
		var word uint64
		n := len(b)
		if n > 8 {
			n = 8
		}
		for i := 0; i < n; i++ {
			word = word<<8 | uint64(b[i])
		}
		word <<= uint(8 * (8 - n))
		s.WriteUint64(word)
		b = b[n:]
	}
}

// WriteString is a convenience wrapper over WriteBytes.
func (s *State) WriteString(v string) {
	s.WriteBytes([]byte(v))
}

// finalizeLane applies the finalization step for one lane given its own
// (z, r, c) and a shift pulled from the high 6 bits of the other two
// lanes' z registers.
func finalizeLane(z, r, c uint64, otherZA, otherZB uint64) uint64 {
	shift := uint((otherZA>>58)^(otherZB>>58)) & 63
	mixed := (z*rotMixA^r*rotMixB) + z0Base
	return r ^ bits.RotateLeft64(mixed, int(shift))
}

// Sum32 finalizes the mixer and returns the 32-character base-32 digest.
// Each lane contributes 55 bits of its finalized register; 165 bits round
// down to 32 five-bit characters, so the leading 5 bits are dropped (see
// encode()).
func (s *State) Sum32() string {
	f1 := finalizeLane(s.z1, s.r1, c1, s.z2, s.z3)
	f2 := finalizeLane(s.z2, s.r2, c2, s.z1, s.z3)
	f3 := finalizeLane(s.z3, s.r3, c3, s.z1, s.z2)
	return encode(f1, f2, f3)
}

// Sum64 finalizes the mixer and folds the three lane registers into a
// single 64-bit value. It is used where a compact structural-equality
// fingerprint is wanted (pattern and NFA structural hashes) rather
// than the full printable digest Sum32 produces; both finalize the same
// three lanes, so Sum64 is just a narrower view of the same mix.
func (s *State) Sum64() uint64 {
	f1 := finalizeLane(s.z1, s.r1, c1, s.z2, s.z3)
	f2 := finalizeLane(s.z2, s.r2, c2, s.z1, s.z3)
	f3 := finalizeLane(s.z3, s.r3, c3, s.z1, s.z2)
	return f1 ^ bits.RotateLeft64(f2, 21) ^ bits.RotateLeft64(f3, 43)
}

// encode packs the low 55 bits of each of the three finalized lanes into a
// single 165-bit big-endian bit string (lane1 || lane2 || lane3, MSB first
// within each lane) and renders the low 160 bits of it as 32 base-32
// characters, dropping the leading 5 bits so the output is exactly 32
// characters long.
func encode(f1, f2, f3 uint64) string {
	lane := func(f uint64) uint64 { return f & ((1 << 55) - 1) }
	lanes := [3]uint64{lane(f1), lane(f2), lane(f3)}

	// bitAt returns the bit at logical position p (0 = MSB of lane0) of the
	// concatenated 165-bit string.
	bitAt := func(p int) uint64 {
		laneIdx := p / 55
		offset := p % 55
		shift := 54 - offset
		return (lanes[laneIdx] >> uint(shift)) & 1
	}

	const totalBits = 165
	const dropped = totalBits - 32*5 // 5

	out := make([]byte, 32)
	pos := dropped
	for i := 0; i < 32; i++ {
		v := byte(0)
		for b := 0; b < 5; b++ {
			v = v<<1 | byte(bitAt(pos))
			pos++
		}
		out[i] = Alphabet[v]
	}
	return string(out)
}
