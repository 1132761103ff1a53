// Package csvsource reads catalog records from CSV files.
//
// The expected layout is:
//
//	Library:City Library
//	type,title,author,year,isbn,first_name,last_name,card_number
//	book,Dune,Herbert,1965,9780441013593,,,
//	reader,,,,,Jan,Novak,
//
// The first line names the catalog and may be omitted, in which case the
// header is expected on the first line. The header line is always skipped.
// The row types "kniha" and "ctenar" are accepted as aliases of "book" and
// "reader", and "Knihovna:" is accepted as metadata prefix.
package csvsource
