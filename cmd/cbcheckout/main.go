// Command cbcheckout inspects hosted checkout pages from the terminal: it
// prints checkout URLs, classifies navigation URLs the way the embedded
// component does, and sends the diagnostic beacon.
package main

import (
	"os"

	"github.com/go-drift/checkout/cmd/cbcheckout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
