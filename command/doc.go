// Package command implements the simulator's line-command interpreter,
// shared by the interactive prompt, script files, and TCP clients.
//
// A command is one line: a name followed by whitespace-separated
// arguments; '#' starts a comment line and blank lines are ignored.
// Errors in a command (unknown name, bad arguments, unknown algorithm
// or parameter) are written to the output and are never fatal to the
// interpreter; only "exit" ends the session, reported as ErrExit.
package command
