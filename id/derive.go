package id

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/viant/lineage/digest"
)

// MaxIndex is the largest return or put index that fits the index suffix.
const MaxIndex = math.MaxInt32

// Generator derives task identifiers with a configurable digest. Two
// processes only agree on task identifiers when they use the same digest.
type Generator struct {
	digest digest.Func
}

// GeneratorOption configures a Generator.
type GeneratorOption func(g *Generator)

// WithDigest sets the hashing primitive; its output must be at least Size bytes.
func WithDigest(fn digest.Func) GeneratorOption {
	return func(g *Generator) {
		g.digest = fn
	}
}

// NewGenerator creates a generator, sha256 is used unless WithDigest is supplied.
// It panics when the digest output is shorter than Size.
func NewGenerator(options ...GeneratorOption) *Generator {
	ret := &Generator{digest: digest.SHA256}
	for _, option := range options {
		option(ret)
	}
	if size := ret.digest().Size(); size < Size {
		panic(fmt.Sprintf("id: digest size %d is shorter than identifier size %d", size, Size))
	}
	return ret
}

var defaultGenerator = NewGenerator()

// GenerateTaskID derives an unfinished task identifier from the driver, the
// parent task and the parent's task counter.
func (g *Generator) GenerateTaskID(driver DriverID, parent TaskID, counter uint32) TaskID {
	h := g.digest()
	h.Write(driver[:])
	h.Write(parent[:])
	var encoded [4]byte
	binary.LittleEndian.PutUint32(encoded[:], counter)
	h.Write(encoded[:])
	var ret TaskID
	copy(ret[:], h.Sum(nil))
	return ret
}

// GenerateTaskID derives a task identifier with the default sha256 generator.
// Identical arguments always produce the identical identifier.
func GenerateTaskID(driver DriverID, parent TaskID, counter uint32) TaskID {
	return defaultGenerator.GenerateTaskID(driver, parent, counter)
}

// FinishTaskID zeroes the index suffix. The result is the prefix shared by
// all objects created by the task.
func FinishTaskID(task TaskID) TaskID {
	ret := task
	clear(ret[PrefixSize:])
	return ret
}

// ComputeReturnID returns the identifier of the index-th return value of task.
func ComputeReturnID(task TaskID, index int64) (ObjectID, error) {
	if err := checkIndex("compute return id", index); err != nil {
		return ObjectID{}, err
	}
	return computeObjectID(task, int32(index)), nil
}

// ComputePutID returns the identifier of the index-th object put by task.
func ComputePutID(task TaskID, index int64) (ObjectID, error) {
	if err := checkIndex("compute put id", index); err != nil {
		return ObjectID{}, err
	}
	return computeObjectID(task, -int32(index)), nil
}

// ComputeTaskID returns the finished identifier of the task that created the
// object. It does not check that such a task exists.
func ComputeTaskID(object ObjectID) TaskID {
	return FinishTaskID(TaskID(object))
}

// ComputeObjectIndex decodes the object index: positive for return values,
// negative for puts.
func ComputeObjectIndex(object ObjectID) (int64, error) {
	index := int64(int32(binary.LittleEndian.Uint32(object[PrefixSize:])))
	switch {
	case index == 0:
		return 0, &DomainError{Op: "compute object index", Index: index, Reason: "does not denote an object"}
	case index < -MaxIndex:
		return 0, &DomainError{Op: "compute object index", Index: index, Reason: fmt.Sprintf("exceeds max magnitude %d", MaxIndex)}
	}
	return index, nil
}

func computeObjectID(task TaskID, index int32) ObjectID {
	ret := ObjectID(FinishTaskID(task))
	binary.LittleEndian.PutUint32(ret[PrefixSize:], uint32(index))
	return ret
}

func checkIndex(op string, index int64) error {
	switch {
	case index < 1:
		return &DomainError{Op: op, Index: index, Reason: "must be positive"}
	case index > MaxIndex:
		return &DomainError{Op: op, Index: index, Reason: fmt.Sprintf("exceeds max %d", MaxIndex)}
	}
	return nil
}
