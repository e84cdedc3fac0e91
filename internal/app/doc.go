// Package app contains the command implementations behind the tinydfa CLI.
// It turns a validated Config into compiled automata, counts, match results
// and job reports, decoupled from flag parsing and process exit codes.
package app
