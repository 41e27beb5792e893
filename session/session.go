package session

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/viant/lineage/id"
	"github.com/viant/lineage/internal/idgen"
	"github.com/viant/lineage/tracing"
)

// maxPrealloc bounds the initial capacity of ReturnIDs results.
const maxPrealloc = 1024

// Session holds the derivation state of one worker: the driver it serves,
// the task it currently executes and the counters used to name the child
// tasks and put objects of that task.
type Session struct {
	name      string
	driver    id.DriverID
	generator *id.Generator

	mu       sync.Mutex
	current  id.TaskID
	counter  uint64
	putIndex int64
}

// Name returns the session name used in traces.
func (s *Session) Name() string {
	return s.name
}

// Driver returns the driver identifier.
func (s *Session) Driver() id.DriverID {
	return s.driver
}

// CurrentTask returns the finished identifier of the task being executed.
func (s *Session) CurrentTask() id.TaskID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Enter switches the session to task and resets its counters.
func (s *Session) Enter(task id.TaskID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = id.FinishTaskID(task)
	s.counter = 0
	s.putIndex = 0
}

// NextTaskID names the next child task submitted by the current task.
func (s *Session) NextTaskID(ctx context.Context) (id.TaskID, error) {
	_, span := tracing.StartSpan(ctx, "session.NextTaskID")
	s.mu.Lock()
	if s.counter > math.MaxUint32 {
		parent := s.current
		s.mu.Unlock()
		err := fmt.Errorf("session %s: task counter exhausted for parent %v", s.name, parent)
		tracing.EndSpan(span, err)
		return id.TaskID{}, err
	}
	parent, counter := s.current, uint32(s.counter)
	s.counter++
	s.mu.Unlock()

	ret := s.generator.GenerateTaskID(s.driver, parent, counter)
	span.WithIDs(map[string]fmt.Stringer{"lineage.parent": parent, "lineage.task": ret}).
		WithAttributes(map[string]string{"lineage.counter": fmt.Sprint(counter)})
	tracing.EndSpan(span, nil)
	return ret, nil
}

// NextPutID names the next object put by the current task.
func (s *Session) NextPutID(ctx context.Context) (id.ObjectID, error) {
	_, span := tracing.StartSpan(ctx, "session.NextPutID")
	s.mu.Lock()
	task, index := s.current, s.putIndex+1
	if index <= id.MaxIndex {
		s.putIndex = index
	}
	s.mu.Unlock()

	ret, err := id.ComputePutID(task, index)
	if err == nil {
		span.WithIDs(map[string]fmt.Stringer{"lineage.task": task, "lineage.object": ret})
	}
	tracing.EndSpan(span, err)
	return ret, err
}

// ReturnIDs names the n return values of task, n must not exceed id.MaxIndex.
func (s *Session) ReturnIDs(task id.TaskID, n int) ([]id.ObjectID, error) {
	switch {
	case n < 0:
		return nil, &id.DomainError{Op: "session return ids", Index: int64(n), Reason: "must not be negative"}
	case int64(n) > id.MaxIndex:
		return nil, &id.DomainError{Op: "session return ids", Index: int64(n), Reason: fmt.Sprintf("exceeds max %d", id.MaxIndex)}
	}
	ret := make([]id.ObjectID, 0, min(n, maxPrealloc))
	for i := 1; i <= n; i++ {
		object, err := id.ComputeReturnID(task, int64(i))
		if err != nil {
			return nil, err
		}
		ret = append(ret, object)
	}
	return ret, nil
}

// New creates a session positioned at the root task of driver.
func New(driver id.DriverID, options ...Option) *Session {
	ret := &Session{driver: driver}
	for _, option := range options {
		option(ret)
	}
	if ret.name == "" {
		ret.name = idgen.New()
	}
	if ret.generator == nil {
		ret.generator = id.NewGenerator()
	}
	ret.current = RootTaskID(ret.generator, driver)
	return ret
}

// RootTaskID returns the finished identifier of the driver's root task.
func RootTaskID(generator *id.Generator, driver id.DriverID) id.TaskID {
	return id.FinishTaskID(generator.GenerateTaskID(driver, id.Nil[id.Task](), 0))
}
