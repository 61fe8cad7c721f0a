package main

import "github.com/sobande/taskrr/cmd"

func main() {
	cmd.Execute()
}
