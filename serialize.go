package hll

import (
	"encoding/binary"
	"fmt"
	"log/slog"
)

// Component H: the byte layout of spec §6.2. Grounded on the teacher's
// schema_version.go (packVersionByte/packParametersByte/packCutoffByte,
// the same "one header byte per parameter" shape) and its
// serializer.go/deserializer.go pair, simplified here to the
// byte-granular gap codec of gapcodec.go rather than their bit-granular
// word splicing.

const (
	magic         = "HLLX"
	formatVersion = byte(0x01)

	variantByteHashList = byte(0)
	variantByteDense    = byte(1)

	headerLen = 4 + 1 + 1 + 1 + 1 // magic + version + p + b + variant
)

// MarshalBinary implements the spec §6.2 byte layout.
func (s *Sketch) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, headerLen+16)
	buf = append(buf, magic...)
	buf = append(buf, formatVersion, byte(s.p), byte(s.b))

	switch s.variant {
	case variantHashList:
		buf = append(buf, variantByteHashList)
		buf = append(buf, byte(s.hashList.HashBits()))
		var nb [4]byte
		binary.LittleEndian.PutUint32(nb[:], uint32(s.hashList.Len()))
		buf = append(buf, nb[:]...)
		buf = append(buf, encodeGaps(s.hashList.Composites())...)
	case variantDense:
		buf = append(buf, variantByteDense)
		buf = append(buf, packRegisterBytes(s.dense)...)
	}
	return buf, nil
}

// Unmarshal reconstructs a Sketch from bytes produced by MarshalBinary.
// hasher and logger are supplied by the caller (they are construction
// parameters, not part of the wire format, per spec §6.1); a nil hasher
// defaults to DefaultHasher(), a nil logger to slog.Default().
//
// Deserialization validates p, b against the supported ranges and
// rejects a mismatched magic/version/truncated payload with ErrFormat,
// per spec §6.2 and §7.
func Unmarshal(data []byte, hasher Hasher, logger *slog.Logger) (*Sketch, error) {
	if len(data) < headerLen {
		return nil, fmt.Errorf("%w: truncated header (%d bytes)", ErrFormat, len(data))
	}
	if string(data[:4]) != magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrFormat, data[:4])
	}
	if data[4] != formatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrFormat, data[4])
	}

	p, b := uint(data[5]), uint(data[6])
	if err := validateParams(p, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	if hasher == nil {
		hasher = DefaultHasher()
	}
	diag := newDiagnostics(logger)
	payload := data[headerLen:]

	switch data[7] {
	case variantByteHashList:
		if len(payload) < 5 {
			return nil, fmt.Errorf("%w: truncated hash-list header", ErrFormat)
		}
		hashBits := uint(payload[0])
		n := binary.LittleEndian.Uint32(payload[1:5])

		hl := NewHashList(p, b)
		if hl.layout.hashBits != hashBits {
			return nil, fmt.Errorf("%w: hash-list width mismatch (got %d, want %d)", ErrFormat, hashBits, hl.layout.hashBits)
		}
		stream := payload[5:]
		terminators := 0
		for _, c := range stream {
			if c < 0x80 {
				terminators++
			}
		}
		if uint64(terminators) < uint64(n) {
			return nil, fmt.Errorf("%w: truncated hash-list gap stream (%d of %d gaps)", ErrFormat, terminators, n)
		}
		composites := decodeGaps(stream, int(n))
		hl.composites = composites
		hl.recomputeSaturation()

		return &Sketch{p: p, b: b, hasher: hasher, diag: diag, variant: variantHashList, hashList: hl}, nil

	case variantByteDense:
		m := uint(1) << p
		expected := int((uint64(m)*uint64(b) + 7) / 8)
		if len(payload) < expected {
			return nil, fmt.Errorf("%w: truncated dense payload (%d of %d bytes)", ErrFormat, len(payload), expected)
		}
		regs := unpackRegisterBytes(payload[:expected], b, m)
		return &Sketch{p: p, b: b, hasher: hasher, diag: diag, variant: variantDense, dense: regs}, nil

	default:
		return nil, fmt.Errorf("%w: unknown variant byte %d", ErrFormat, data[7])
	}
}

// packRegisterBytes writes a register array's backing words out as
// ⌈count*width/8⌉ little-endian bytes, per spec §6.2 ("little-endian word
// order").
func packRegisterBytes(r *Registers) []byte {
	total := int((uint64(r.count)*uint64(r.width) + 7) / 8)
	buf := make([]byte, len(r.words)*8)
	for i, w := range r.words {
		binary.LittleEndian.PutUint64(buf[i*8:], w)
	}
	return buf[:total]
}

// unpackRegisterBytes is the inverse of packRegisterBytes.
func unpackRegisterBytes(data []byte, width, count uint) *Registers {
	nWords := (width*count + bitsPerWordMask) >> 6
	padded := make([]byte, nWords*8)
	copy(padded, data)

	words := make([]uint64, nWords)
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(padded[i*8:])
	}
	return &Registers{words: words, width: width, count: count, mask: (uint64(1) << width) - 1}
}
