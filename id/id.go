package id

import (
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
	"github.com/viant/lineage/internal/idgen"
)

const (
	// Size is the number of bytes in every identifier.
	Size = 20
	// IndexSize is the number of trailing bytes reserved for the object index.
	IndexSize = 4
	// PrefixSize is the number of leading bytes derived from task lineage.
	PrefixSize = Size - IndexSize
)

// ID is a fixed size identifier value. K tags the identifier kind so that a
// TaskID cannot be passed where an ObjectID is expected; all kinds share the
// same byte layout and converting between them is a plain Go conversion.
type ID[K Kind] [Size]byte

// FromRandom returns an identifier filled with uniformly random bytes.
func FromRandom[K Kind]() ID[K] {
	var ret ID[K]
	idgen.Read(ret[:])
	return ret
}

// FromBinary reinterprets exactly Size bytes as an identifier.
func FromBinary[K Kind](data []byte) (ID[K], error) {
	var ret ID[K]
	if len(data) != Size {
		return ret, &InvalidLengthError{Kind: kindName[K](), Got: len(data), Want: Size}
	}
	copy(ret[:], data)
	return ret, nil
}

// FromHex decodes the hexadecimal form produced by Hex. Malformed input is
// reported as an *InvalidLengthError wrapping the decoding error.
func FromHex[K Kind](text string) (ID[K], error) {
	var ret ID[K]
	if len(text) != 2*Size {
		return ret, &InvalidLengthError{Kind: kindName[K](), Got: len(text), Want: 2 * Size, Hex: true}
	}
	if _, err := hex.Decode(ret[:], []byte(text)); err != nil {
		return ID[K]{}, &InvalidLengthError{Kind: kindName[K](), Got: len(text), Want: 2 * Size, Hex: true, Err: err}
	}
	return ret, nil
}

// Nil returns the all-zero identifier.
func Nil[K Kind]() ID[K] {
	return ID[K]{}
}

// IsNil returns true when every byte is zero.
func (i ID[K]) IsNil() bool {
	return i == ID[K]{}
}

// Binary returns a copy of the raw bytes.
func (i ID[K]) Binary() []byte {
	ret := make([]byte, Size)
	copy(ret, i[:])
	return ret
}

// Hex returns the lowercase hexadecimal encoding of Binary.
func (i ID[K]) Hex() string {
	return hex.EncodeToString(i[:])
}

func (i ID[K]) String() string {
	return i.Hex()
}

// Hash returns a stable 64-bit hash of the identifier bytes. Identifiers are
// comparable and can key a map directly; Hash is meant for sharding and
// external hash tables.
func (i ID[K]) Hash() uint64 {
	return xxhash.Sum64(i[:])
}

// Kind returns the kind name, e.g. "TaskID".
func (i ID[K]) Kind() string {
	return kindName[K]()
}

// Size returns the identifier size in bytes.
func (i ID[K]) Size() int {
	return Size
}

// Unique drops the kind tag.
func (i ID[K]) Unique() UniqueID {
	return UniqueID(i)
}

// MarshalText encodes the identifier as hex so that it can be used in JSON and YAML documents.
func (i ID[K]) MarshalText() ([]byte, error) {
	ret := make([]byte, 2*Size)
	hex.Encode(ret, i[:])
	return ret, nil
}

// UnmarshalText decodes the hex form; an empty input yields the nil identifier.
func (i *ID[K]) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*i = ID[K]{}
		return nil
	}
	decoded, err := FromHex[K](string(text))
	if err != nil {
		return err
	}
	*i = decoded
	return nil
}
