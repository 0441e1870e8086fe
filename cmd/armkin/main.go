// Command armkin computes forward and inverse kinematics for a two-link
// planar arm.
package main

import (
	"os"

	"github.com/roach88/armkin/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.NewRootCommand(), os.Args[1:]))
}
