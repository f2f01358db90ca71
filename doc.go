// package contention runs concurrent workers against a piece of shared state
// through interchangeable synchronization strategies and reports what they
// observed against what they should have observed.
//
// There are two kinds of shared state. The first is an integer Counter that
// workers increment:
//
//	h, _ := contention.NewCounterHarness(contention.DefaultCounterConfig())
//	res, err := h.Run(ctx, contention.Synced)
//	if err != nil {
//		// the workers were not waited for: res means nothing
//	}
//	fmt.Println(res.Expected, res.Actual, res.Duration)
//
// The Unsynced strategy performs a bare read-increment-write, so with more
// than one worker it is expected to lose updates. That is the outcome being
// demonstrated, not an error, and Run reports it only through the result.
// Synced, Atomic and WithLock always land every increment.
//
// The second is a file that workers append lines to:
//
//	h, _ := contention.NewFileWriteHarness(contention.DefaultFileConfig())
//	res, err := h.Run(ctx, contention.Queue)
//	rep, err := contention.Inspect(res.Path)
//	err = rep.Check("QUEUE", res.Workers, res.WritesPerWorker)
//
// Every write strategy appends whole lines, so after a run the file holds
// exactly workers * writes lines for it, each worker's in the order it wrote
// them. The Queue strategy only promises that once its consumer has drained,
// which the harness waits for before returning.
//
// Harnesses block until their workers are done. An optional timeout, or
// cancelling the context, turns a wait that takes too long into
// ErrIncomplete instead of a silently truncated result.
package contention
