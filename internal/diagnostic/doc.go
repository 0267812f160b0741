// Package diagnostic provides structured errors and warnings reported while
// building a pallet definition model.
//
// Every problem found in the annotated source is collected rather than
// returned on first sight, so a single run reports all of them.
package diagnostic
