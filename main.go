package main

import "github.com/embtools/mcudiag/cmd"

func main() {
	cmd.Execute()
}
