package main

import "ghfetch/cmd"

func main() {
	cmd.Execute()
}
