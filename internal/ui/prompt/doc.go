// Package prompt provides the interactive questions treehouse asks.
//
// [Terminal.Line] reads one line of free text on stderr. It reports
// ok == false instead of blocking when stdin is not a terminal, so callers
// can treat a missing answer as "no".
package prompt
