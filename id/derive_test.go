package id

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"hash"
	"hash/fnv"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/lineage/digest"
)

func scenarioDriver() DriverID {
	var ret DriverID
	ret[0] = 0x01
	return ret
}

func TestScenario(t *testing.T) {
	t0 := GenerateTaskID(scenarioDriver(), Nil[Task](), 0)
	t0f := FinishTaskID(t0)

	o1, err := ComputeReturnID(t0, 1)
	assert.NoError(t, err)
	assert.Equal(t, t0f, ComputeTaskID(o1))
	index, err := ComputeObjectIndex(o1)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, index)

	o2, err := ComputePutID(t0, 3)
	assert.NoError(t, err)
	index, err = ComputeObjectIndex(o2)
	assert.NoError(t, err)
	assert.EqualValues(t, -3, index)

	for _, invalid := range []int64{0, -1} {
		_, err = ComputeReturnID(t0, invalid)
		assert.True(t, errors.Is(err, ErrDomain), "index %d", invalid)
		var domainErr *DomainError
		assert.True(t, errors.As(err, &domainErr))
		assert.Equal(t, invalid, domainErr.Index)
	}
}

func TestGenerateTaskID(t *testing.T) {
	driver := FromRandom[Driver]()
	parent := FromRandom[Task]()

	first := GenerateTaskID(driver, parent, 7)
	assert.Equal(t, first, GenerateTaskID(driver, parent, 7))
	assert.False(t, first.IsNil())

	seen := map[TaskID]bool{}
	for counter := uint32(0); counter < 1000; counter++ {
		seen[GenerateTaskID(driver, parent, counter)] = true
	}
	assert.Len(t, seen, 1000)

	assert.NotEqual(t, first, GenerateTaskID(FromRandom[Driver](), parent, 7))
	assert.NotEqual(t, first, GenerateTaskID(driver, FromRandom[Task](), 7))
}

func TestGenerateTaskIDLayout(t *testing.T) {
	driver := scenarioDriver()
	parent := Nil[Task]()
	h := sha256.New()
	h.Write(driver[:])
	h.Write(parent[:])
	h.Write([]byte{0x2a, 0, 0, 0})
	sum := h.Sum(nil)

	actual := GenerateTaskID(driver, parent, 42)
	assert.Equal(t, sum[:Size], actual.Binary())
}

func TestGeneratorDigest(t *testing.T) {
	driver := FromRandom[Driver]()
	parent := FromRandom[Task]()

	blake := NewGenerator(WithDigest(digest.BLAKE2b256))
	sha3 := NewGenerator(WithDigest(digest.SHA3256))
	assert.Equal(t, blake.GenerateTaskID(driver, parent, 1), blake.GenerateTaskID(driver, parent, 1))
	assert.NotEqual(t, GenerateTaskID(driver, parent, 1), blake.GenerateTaskID(driver, parent, 1))
	assert.NotEqual(t, sha3.GenerateTaskID(driver, parent, 1), blake.GenerateTaskID(driver, parent, 1))

	assert.Panics(t, func() {
		NewGenerator(WithDigest(func() hash.Hash { return fnv.New64a() }))
	})
}

func TestFinishTaskID(t *testing.T) {
	for i := 0; i < 50; i++ {
		task := FromRandom[Task]()
		finished := FinishTaskID(task)
		assert.Equal(t, finished, FinishTaskID(finished))
		assert.Equal(t, task[:PrefixSize], finished[:PrefixSize])
		assert.Equal(t, make([]byte, IndexSize), finished[PrefixSize:])
	}
	task := FromRandom[Task]()
	original := task
	_ = FinishTaskID(task)
	assert.Equal(t, original, task)
}

func TestReturnAndPutInverse(t *testing.T) {
	var testCases = []struct {
		description string
		index       int64
	}{
		{description: "first", index: 1},
		{description: "small", index: 3},
		{description: "byte boundary", index: 256},
		{description: "large", index: 1 << 20},
		{description: "max", index: MaxIndex},
	}

	for i := 0; i < 10; i++ {
		task := FromRandom[Task]()
		for _, testCase := range testCases {
			ret, err := ComputeReturnID(task, testCase.index)
			assert.NoError(t, err, testCase.description)
			assert.Equal(t, FinishTaskID(task), ComputeTaskID(ret), testCase.description)
			index, err := ComputeObjectIndex(ret)
			assert.NoError(t, err, testCase.description)
			assert.Equal(t, testCase.index, index, testCase.description)

			put, err := ComputePutID(task, testCase.index)
			assert.NoError(t, err, testCase.description)
			assert.Equal(t, FinishTaskID(task), ComputeTaskID(put), testCase.description)
			index, err = ComputeObjectIndex(put)
			assert.NoError(t, err, testCase.description)
			assert.Equal(t, -testCase.index, index, testCase.description)

			assert.NotEqual(t, ret, put, testCase.description)
		}
	}
}

func TestIndexLayout(t *testing.T) {
	task := FromRandom[Task]()
	ret, err := ComputeReturnID(task, 0x01020304)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, ret[PrefixSize:])

	put, err := ComputePutID(task, 1)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, put[PrefixSize:])
}

func TestDisjointness(t *testing.T) {
	task := FromRandom[Task]()
	returns := map[ObjectID]bool{}
	for i := int64(1); i <= 64; i++ {
		ret, err := ComputeReturnID(task, i)
		assert.NoError(t, err)
		returns[ret] = true
	}
	for j := int64(1); j <= 64; j++ {
		put, err := ComputePutID(task, j)
		assert.NoError(t, err)
		assert.False(t, returns[put], "put %d", j)
	}
}

func TestIndexDomain(t *testing.T) {
	task := FromRandom[Task]()
	var testCases = []struct {
		description string
		index       int64
	}{
		{description: "zero", index: 0},
		{description: "negative", index: -1},
		{description: "min int", index: math.MinInt64},
		{description: "above max", index: MaxIndex + 1},
		{description: "max int", index: math.MaxInt64},
	}
	for _, testCase := range testCases {
		_, err := ComputeReturnID(task, testCase.index)
		assert.True(t, errors.Is(err, ErrDomain), testCase.description)
		_, err = ComputePutID(task, testCase.index)
		assert.True(t, errors.Is(err, ErrDomain), testCase.description)
	}
}

func TestComputeObjectIndexDomain(t *testing.T) {
	finished := ObjectID(FinishTaskID(FromRandom[Task]()))
	_, err := ComputeObjectIndex(finished)
	assert.True(t, errors.Is(err, ErrDomain))

	overflow := finished
	binary.LittleEndian.PutUint32(overflow[PrefixSize:], uint32(1)<<31)
	_, err = ComputeObjectIndex(overflow)
	assert.True(t, errors.Is(err, ErrDomain))
	var domainErr *DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.EqualValues(t, math.MinInt32, domainErr.Index)
}

func TestDecode(t *testing.T) {
	task := FromRandom[Task]()
	put, err := ComputePutID(task, 5)
	assert.NoError(t, err)
	origin, err := Decode(put)
	assert.NoError(t, err)
	assert.Equal(t, FinishTaskID(task), origin.Task)
	assert.True(t, origin.IsPut())
	assert.False(t, origin.IsReturn())
	assert.EqualValues(t, 5, origin.Ordinal())

	ret, err := ComputeReturnID(task, 2)
	assert.NoError(t, err)
	origin, err = Decode(ret)
	assert.NoError(t, err)
	assert.True(t, origin.IsReturn())
	assert.EqualValues(t, 2, origin.Ordinal())

	_, err = Decode(ObjectID(FinishTaskID(task)))
	assert.Error(t, err)
}

func TestConcurrentDerivation(t *testing.T) {
	driver := FromRandom[Driver]()
	parent := FromRandom[Task]()
	expect := GenerateTaskID(driver, parent, 9)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if actual := GenerateTaskID(driver, parent, 9); actual != expect {
					t.Errorf("expected %v, got %v", expect, actual)
					return
				}
			}
		}()
	}
	wg.Wait()
}
