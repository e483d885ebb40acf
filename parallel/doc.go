// Package parallel splits an output buffer into contiguous, disjoint partitions
// and runs one goroutine per partition, joining them before returning.
//
// The partitioning rule is fixed:
//
//	block = n / tasks
//	task i < tasks-1 owns [i*block, (i+1)*block)
//	task tasks-1     owns [(tasks-1)*block, n)
//
// so the last task absorbs the n mod tasks remainder.
//
// Each task receives a sub-slice of the shared destination built with a full
// slice expression (buf[lo:hi:hi]). The capacity cap means a task cannot reach
// past its own range even through append, so concurrent writers never alias and
// no lock or atomic is needed on the data path.
//
// Failure model:
//
//   - Errors returned by tasks are collected and returned joined (errors.Join)
//     once every task has finished.
//   - A panic inside a task is recovered, wrapped into *PanicError and re-raised
//     on the caller's goroutine after the join. It is never swallowed.
//
// There is no cancellation: a slow task blocks the whole call.
package parallel
