package main

import "doorsync/cmd"

func main() {
	cmd.Execute()
}
