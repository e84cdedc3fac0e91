package dfa

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/coregx/tinydfa/nfa"
)

// Binary layout (all integers are uvarints unless noted):
//
//	magic      "TDFA"
//	version    1 byte
//	alphabet   length, then the symbol bytes
//	states     state count R
//	accept     ceil(R/8) bytes, bit s%8 of byte s/8 set iff s accepts
//	trans      R*len(alphabet) successor IDs, state-major
const (
	encodingMagic   = "TDFA"
	encodingVersion = 1
)

// maxEncodedSize bounds the decompressed size accepted by Load.
const maxEncodedSize = 1 << 30

// MarshalBinary encodes d in the uncompressed binary format.
func (d *DFA) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, len(encodingMagic)+1+d.stride+len(d.accept)/8+len(d.trans)*2+16)
	buf = append(buf, encodingMagic...)
	buf = append(buf, encodingVersion)
	buf = binary.AppendUvarint(buf, uint64(d.stride))
	buf = append(buf, d.alphabet.String()...)
	buf = binary.AppendUvarint(buf, uint64(len(d.accept)))

	bitmap := make([]byte, (len(d.accept)+7)/8)
	for s, ok := range d.accept {
		if ok {
			bitmap[s/8] |= 1 << (s % 8)
		}
	}
	buf = append(buf, bitmap...)
	for _, next := range d.trans {
		buf = binary.AppendUvarint(buf, uint64(next))
	}
	return buf, nil
}

// UnmarshalBinary decodes the format written by MarshalBinary into d.
// Malformed input fails with an error wrapping ErrCorrupt.
//
// d must not be in use by other goroutines; a decoded DFA is immutable
// like any other.
func (d *DFA) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)

	magic := make([]byte, len(encodingMagic))
	if _, err := io.ReadFull(r, magic); err != nil || string(magic) != encodingMagic {
		return corrupt("bad magic")
	}
	version, err := r.ReadByte()
	if err != nil {
		return corrupt("missing version")
	}
	if version != encodingVersion {
		return corrupt("unsupported version %d", version)
	}

	k, err := readLen(r, nfa.MaxAlphabetLen, "alphabet length")
	if err != nil {
		return err
	}
	symbols := make([]byte, k)
	if _, err := io.ReadFull(r, symbols); err != nil {
		return corrupt("truncated alphabet")
	}
	alphabet, err := nfa.NewAlphabet(string(symbols))
	if err != nil {
		return &DFAError{Kind: Corrupt, Message: "corrupt DFA encoding", Cause: err}
	}

	// every state costs at least one bitmap bit and k transition bytes
	states, err := readLen(r, r.Len()*8, "state count")
	if err != nil {
		return err
	}
	if states == 0 {
		return corrupt("no states")
	}
	if k > 0 && states > r.Len()/k {
		return corrupt("state count %d exceeds input size", states)
	}

	bitmap := make([]byte, (states+7)/8)
	if _, err := io.ReadFull(r, bitmap); err != nil {
		return corrupt("truncated acceptance bitmap")
	}
	accept := make([]bool, states)
	for s := range accept {
		accept[s] = bitmap[s/8]&(1<<(s%8)) != 0
	}

	trans := make([]StateID, states*k)
	for i := range trans {
		next, err := binary.ReadUvarint(r)
		if err != nil {
			return corrupt("truncated transition table")
		}
		if next >= uint64(states) {
			return corrupt("transition %d of state %d targets unknown state %d", i%k, i/k, next)
		}
		trans[i] = StateID(next)
	}
	if r.Len() != 0 {
		return corrupt("%d trailing bytes", r.Len())
	}

	*d = DFA{
		alphabet: alphabet,
		stride:   k,
		trans:    trans,
		accept:   accept,
	}
	return nil
}

// Save writes d to w in the binary format, compressed with zstd.
func (d *DFA) Save(w io.Writer) error {
	data, err := d.MarshalBinary()
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("dfa: create zstd writer: %w", err)
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return fmt.Errorf("dfa: write: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("dfa: flush: %w", err)
	}
	return nil
}

// Load reads a DFA written by Save.
func Load(r io.Reader) (*DFA, error) {
	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("dfa: create zstd reader: %w", err)
	}
	defer dec.Close()

	data, err := io.ReadAll(io.LimitReader(dec, maxEncodedSize+1))
	if err != nil {
		return nil, &DFAError{Kind: Corrupt, Message: "corrupt DFA encoding", Cause: err}
	}
	if len(data) > maxEncodedSize {
		return nil, corrupt("decompressed size exceeds %d bytes", maxEncodedSize)
	}

	d := new(DFA)
	if err := d.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return d, nil
}

// readLen reads a uvarint length no larger than limit
func readLen(r *bytes.Reader, limit int, what string) (int, error) {
	v, err := binary.ReadUvarint(r)
	if err != nil {
		return 0, corrupt("truncated %s", what)
	}
	if v > uint64(limit) {
		return 0, corrupt("%s %d out of range", what, v)
	}
	return int(v), nil
}
