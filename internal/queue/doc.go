// Package queue persists the posting queue as a single JSON snapshot and
// exposes helpers for driving job lifecycle.
//
// A job moves through exactly one transition, pending to posted; there is no
// failed state. A publish attempt that fails leaves the job pending for the
// next cycle. Every mutation reads the snapshot, changes it in memory,
// recounts posted jobs, and rewrites the whole file through an atomic
// rename. Selection (NextEligible) never mutates, so a post-selection gate
// can reject a candidate without touching the queue.
//
// A missing snapshot file is a legitimate empty queue for reads and a hard
// ErrNoQueue for mutations.
package queue
