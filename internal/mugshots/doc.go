// Package mugshots stores decoded booking photos on disk.
//
// Filenames are deterministic: a sanitized slug of the inmate name plus a
// short content hash, so re-extracting the same detail view overwrites in
// place while distinct photos never collide. Deletion is best-effort since
// queue pruning must not fail on already-missing files.
package mugshots
