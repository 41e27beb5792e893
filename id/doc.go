// Package id implements the lineage identifier scheme used to name tasks and
// the objects they produce without a central coordinator.
//
// Every identifier is Size bytes. The last IndexSize bytes are reserved for a
// signed 32-bit little-endian index; the preceding PrefixSize bytes are shared
// between a finished task identifier and every object it creates:
//
//	task   := id.GenerateTaskID(driver, parent, counter)
//	ret, _ := id.ComputeReturnID(task, 1)   // suffix = +1
//	put, _ := id.ComputePutID(task, 1)      // suffix = -1
//	id.ComputeTaskID(ret) == id.FinishTaskID(task)
//
// All functions are pure and safe for concurrent use.
package id
