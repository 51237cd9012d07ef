// Command salesman solves the travelling salesman problem for a city file.
//
//	salesman solve cities.txt --time-limit 10s --workers 4
//
// The city file holds one "id x y" line per city; id 1 is the origin.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
