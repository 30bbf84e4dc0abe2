// Command greenlight computes green-time plans from the command line and
// serves them over NATS.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
