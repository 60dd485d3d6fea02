// Package queries implements the read path of the order tracking views.
//
// Reads are not side-effect free: a record whose cached shipping status is
// stale is rewritten with the recomputed value before it is returned.
package queries
