// reelcut plans cable cuts across reels from the command line and keeps a
// journal of every cut that was made.
//
// Build:
//   go build -o reelcut ./cmd/reelcut
package main

import "github.com/piwi3910/ReelCut/internal/cli"

func main() {
	cli.Execute()
}
