// Package fixtures contains shared test data for the library catalog.
//
// It provides the canonical bootstrap rows (one book "Dune" and one reader
// "Jan Novak"), the same data as CSV and JSON documents in the layouts the
// record sources read, and deterministic card number sources so that tests
// never depend on random card numbers.
//
// This is testing infrastructure - not production domain code.
package fixtures
