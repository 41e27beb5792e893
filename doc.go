// Package lineage provides deterministic identifiers for tasks and the
// objects they produce.
//
// The identifier scheme itself lives in the id package; this package wires
// it with configuration, pluggable digests and tracing:
//
//	srv, _ := lineage.New()
//	s := srv.NewSession(driverID)
//	task, _ := s.NextTaskID(ctx)
//	returns, _ := s.ReturnIDs(task, 2)
//	origin, _ := srv.Decode(ctx, returns[0])
//
// An object identifier can always be traced back to the task that created it
// without consulting any registry, which lets lost objects be recomputed
// under the same names.
package lineage
