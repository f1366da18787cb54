package main

import "conectads/social/cmd"

func main() {
	cmd.Execute()
}
