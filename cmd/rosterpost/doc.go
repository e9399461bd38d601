// Command rosterpost drives the jail-roster pipeline: scrape builds a ranked
// posting queue from the public roster, post publishes the next eligible
// record, and the remaining commands inspect or reset state. Scrape and post
// are designed to run from cron; both hold a file lock so invocations never
// overlap.
package main
