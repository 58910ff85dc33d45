// Command planner is the cobra-driven CLI surface of SPEC_FULL.md §6/§4.9,
// wired the way theRebelliousNerd-codenerd/cmd/nerd/main.go wires its root
// command: package-level flag variables, a single rootCmd, and a thin
// main() that just calls Execute and uses its returned process exit code.
// Unlike that teacher file, this CLI has exactly one job (run one search
// over one task), so there is one command, not a tree of subcommands.
package main

import "os"

func main() {
	os.Exit(int(Execute()))
}
