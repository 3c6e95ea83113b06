// Command searchnav drives the search navigation state machine from the
// command line.
package main

import "github.com/mesh-intelligence/searchnav/internal/cli"

func main() {
	cli.Execute()
}
