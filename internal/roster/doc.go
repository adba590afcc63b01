// Package roster imports mentor and mentee lists.
//
// A list is a column of free-text names: the first column of the first
// sheet of an .xlsx workbook, the first field of each .csv record, or each
// line of a .txt file. Build turns the rows into participants with the
// identity deriver and keeps track of the rows it had to reject.
package roster
