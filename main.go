package main

import "github.com/agentic-research/themec/cmd"

func main() {
	cmd.Execute()
}
