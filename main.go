package main

import "github.com/killallgit/tadabbur/cmd"

func main() {
	cmd.Execute()
}
