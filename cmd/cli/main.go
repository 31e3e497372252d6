// confparse classifies the lines of network device configuration files and
// dispatches each line to the handler for its label.
package main

import (
	"os"

	"github.com/ccollicutt/confparse/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
