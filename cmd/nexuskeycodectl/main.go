// nexuskeycodectl generates authenticated Nexus keycodes for PAYG devices
// from the command line: Full and Small protocol messages, and Channel
// Origin Command tokens.
package main

import "github.com/angaza/nexus-keycode-go/cmd/nexuskeycodectl/commands"

func main() {
	commands.Execute()
}
