// Package main is the entry point for the scout CLI, which reports football
// play-calling tendencies and predicts the most likely call for a situation.
package main

import "github.com/coachvint-crypto/Football-Scouting-Dashboard/cmd"

func main() {
	cmd.Execute()
}
