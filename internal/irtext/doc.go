// Package irtext reads the textual IR form (.eir files) produced by
// ir.DumpModule. The format is line oriented: one "fn name:" header per
// function, "bbN:" block labels, "%N = op operands : type" instructions
// and a terminator line per block.
//
// Parse errors are reported through diag.Reporter with TXT-prefixed codes
// and the offending line is skipped, so one malformed instruction does not
// hide the rest of the file's problems.
package irtext
