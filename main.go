// ghloc sums the lines added and deleted and the commits made across every
// GitHub repository a user owns.
//
// Usage:
//
//	ghloc set --username <YOUR_NAME> --token <YOUR_TOKEN>
//	ghloc stats
package main

import (
	"github.com/naka-gawa/ghloc/cmd"
)

// Version can be overridden at build time using:
//
//	go build -ldflags="-X main.Version=v1.0.0"
var Version = "dev"

func main() {
	cmd.Version = Version
	cmd.Execute()
}
