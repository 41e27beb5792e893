// Package session tracks the counters a worker needs to name the child
// tasks and put objects of the task it is executing.
package session
