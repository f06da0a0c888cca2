package main

import "setlist/cmd"

func main() {
	cmd.Execute()
}
