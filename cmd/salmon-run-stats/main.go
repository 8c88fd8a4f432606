// Command salmon-run-stats extracts salmon run statistics from Swedish Lapland Fishing
// and writes one <river><year>.txt file per monitored river and year.
package main

import "github.com/pfrederiksen/salmon-run-stats/internal/cli"

func main() {
	cli.Execute()
}
