package idgen

import (
	"encoding/binary"
	"math/rand/v2"

	"github.com/google/uuid"
)

// New returns a new globally unique name as string. It is implemented
// as a thin wrapper so tests can stub it.

var NewFunc = func() string { return uuid.New().String() }

func New() string { return NewFunc() }

// ReadFunc fills b with uniformly random bytes. The default source is the
// runtime seeded generator of math/rand/v2, which is safe for concurrent use.
var ReadFunc = func(b []byte) {
	var word [8]byte
	for len(b) > 0 {
		binary.LittleEndian.PutUint64(word[:], rand.Uint64())
		b = b[copy(b, word[:]):]
	}
}

func Read(b []byte) { ReadFunc(b) }
