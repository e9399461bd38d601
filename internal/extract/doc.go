// Package extract turns the noisy, semi-structured text of a jail-roster
// detail view into a validated inmate record.
//
// The extractor scans visible page text line by line for name, charge, and
// bail using fixed label patterns and placeholder denylists, and picks the
// first embedded image that looks like a booking photo. Each field extraction
// is independent; a miss yields an absent value rather than an error.
//
// Admissibility (valid name + saved mugshot) and the 0-2 priority score are
// computed here so ranking and queuing stay free of parsing concerns.
package extract
