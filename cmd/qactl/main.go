// Package main provides qactl, a terminal front end for browsing a StackQA
// seed file: the question list, single threads, tags and ranked search.
package main

import (
	"os"
	"time"

	"github.com/pterm/pterm"
)

func main() {
	if err := newRootCmd(time.Now).Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
