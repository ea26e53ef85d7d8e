// Command adoc is a thin CLI wrapper around the adoc parser: it reads
// AsciiDoc source from a file or stdin and writes either a dump of the
// parsed document tree (a text tree by default, JSON with --json) or a
// report of the warnings collected while parsing it.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
