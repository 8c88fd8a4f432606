// Package storage writes salmon run series to flat text files.
//
// Each river and year gets its own file, <river><year>.txt, under the output
// directory. A file holds exactly two lines: the comma separated ISO dates and the
// comma separated counts. Existing files are overwritten.
package storage
