package automaton

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/coregx/dfalex/internal/mixhash"
)

// magic tags the start of an encoded PackedDfa payload so Decode can fail
// fast on a completely unrelated blob instead of reading it as garbage.
const magic = "dfax1\x00"

// EncodeTag converts one accept tag into its on-wire bytes. Callers supply
// this since Tag is only constrained to be comparable; this package has
// no way to serialize an arbitrary Tag on its own.
type EncodeTag[Tag comparable] func(Tag) []byte

// DecodeTag is the inverse of EncodeTag.
type DecodeTag[Tag comparable] func([]byte) (Tag, error)

// Encode serializes dfa into a self-describing byte payload: a magic
// prefix, the start-state list, every packed state's transitions and
// accept tag (via encodeTag), and a trailing checksum of everything that
// came before.
func Encode[Tag comparable](dfa *PackedDfa[Tag], encodeTag EncodeTag[Tag]) []byte {
	var body bytes.Buffer
	body.WriteString(magic)

	writeUvarint(&body, uint64(len(dfa.starts)))
	for _, s := range dfa.starts {
		writeUvarint(&body, uint64(s))
	}

	writeUvarint(&body, uint64(len(dfa.states)))
	for _, st := range dfa.states {
		if st.hasAccept {
			body.WriteByte(1)
			tb := encodeTag(st.accept)
			writeUvarint(&body, uint64(len(tb)))
			body.Write(tb)
		} else {
			body.WriteByte(0)
		}

		writeUvarint(&body, uint64(len(st.ranges)))
		for i, r := range st.ranges {
			var buf [2]byte
			binary.BigEndian.PutUint16(buf[:], r)
			body.Write(buf[:])
			writeUvarint(&body, uint64(st.targets[i]))
		}
	}

	sum := mixhash.New()
	sum.WriteBytes(body.Bytes())
	body.WriteString(sum.Sum32())

	return body.Bytes()
}

// Decode parses a payload produced by Encode, verifying the trailing
// checksum before trusting any of it. A mismatch yields *CorruptCacheError
// rather than a partially-decoded PackedDfa.
func Decode[Tag comparable](data []byte, decodeTag DecodeTag[Tag]) (*PackedDfa[Tag], error) {
	const checksumLen = 32
	if len(data) < len(magic)+checksumLen {
		return nil, &CorruptCacheError{Key: "<payload too short>"}
	}

	body, trailer := data[:len(data)-checksumLen], data[len(data)-checksumLen:]
	sum := mixhash.New()
	sum.WriteBytes(body)
	if sum.Sum32() != string(trailer) {
		return nil, &CorruptCacheError{Key: "<checksum mismatch>"}
	}

	r := bytes.NewReader(body)
	if err := expectMagic(r); err != nil {
		return nil, err
	}

	numStarts, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("automaton: decode starts: %w", err)
	}
	starts := make([]uint32, numStarts)
	for i := range starts {
		v, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, fmt.Errorf("automaton: decode start %d: %w", i, err)
		}
		starts[i] = uint32(v)
	}

	numStates, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("automaton: decode state count: %w", err)
	}
	states := make([]packedState[Tag], numStates)
	for i := range states {
		flag, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("automaton: decode state %d flag: %w", i, err)
		}
		if flag == 1 {
			tagLen, err := binary.ReadUvarint(r)
			if err != nil {
				return nil, fmt.Errorf("automaton: decode state %d tag length: %w", i, err)
			}
			tb := make([]byte, tagLen)
			if _, err := readFull(r, tb); err != nil {
				return nil, fmt.Errorf("automaton: decode state %d tag: %w", i, err)
			}
			tag, err := decodeTag(tb)
			if err != nil {
				return nil, fmt.Errorf("automaton: decode state %d tag payload: %w", i, err)
			}
			states[i].hasAccept = true
			states[i].accept = tag
		}

		numRanges, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, fmt.Errorf("automaton: decode state %d range count: %w", i, err)
		}
		states[i].ranges = make([]uint16, numRanges)
		states[i].targets = make([]uint32, numRanges)
		for j := uint64(0); j < numRanges; j++ {
			var buf [2]byte
			if _, err := readFull(r, buf[:]); err != nil {
				return nil, fmt.Errorf("automaton: decode state %d range %d: %w", i, j, err)
			}
			states[i].ranges[j] = binary.BigEndian.Uint16(buf[:])
			target, err := binary.ReadUvarint(r)
			if err != nil {
				return nil, fmt.Errorf("automaton: decode state %d target %d: %w", i, j, err)
			}
			states[i].targets[j] = uint32(target)
		}
	}

	return &PackedDfa[Tag]{states: states, starts: starts}, nil
}

// EncodeTo writes dfa's Encode payload to a stream.
func EncodeTo[Tag comparable](w io.Writer, dfa *PackedDfa[Tag], encodeTag EncodeTag[Tag]) error {
	_, err := w.Write(Encode(dfa, encodeTag))
	return err
}

// DecodeFrom reads and verifies a payload written by EncodeTo.
func DecodeFrom[Tag comparable](r io.Reader, decodeTag DecodeTag[Tag]) (*PackedDfa[Tag], error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("automaton: read payload: %w", err)
	}
	return Decode(data, decodeTag)
}

func expectMagic(r *bytes.Reader) error {
	got := make([]byte, len(magic))
	if _, err := readFull(r, got); err != nil || string(got) != magic {
		return &CorruptCacheError{Key: "<bad magic>"}
	}
	return nil
}

func readFull(r *bytes.Reader, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		m, err := r.Read(buf[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func writeUvarint(buf *bytes.Buffer, v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	buf.Write(tmp[:n])
}
