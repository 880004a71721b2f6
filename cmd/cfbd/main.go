// Command cfbd queries the College Football Data API from the shell.
//
//	cfbd key set <key>
//	cfbd get games -p year=2023 -p team=Alabama --format csv
//	cfbd get player-season-stats -p year=2023 -p category=passing --where 'passing_YDS > 3000'
package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
