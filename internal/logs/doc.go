// Package logs reads the daspub log file for the CLI.
//
// Last keeps memory bounded with a ring buffer when reading the tail of a
// large file. Follow polls for appended lines until its context is done.
package logs
