// Command anagramist is the operator-facing CLI for the cryptoanagram
// search engine: it wires the core solver to a durable SQLite store and
// exposes the solve/candidates/check-database/score verbs.
package main

import (
	"os"

	"github.com/lonnen/anagramist/cli"
)

func main() {
	os.Exit(cli.Execute())
}
