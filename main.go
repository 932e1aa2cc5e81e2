package main

import "github.com/JTMarcu/project-alanna/cmd"

func main() {
	cmd.Execute()
}
