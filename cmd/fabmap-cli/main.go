package main

import "fabmap/cmd/fabmap-cli/cmd"

func main() {
	cmd.Execute()
}
