package main

import cmd "github.com/rohmanhakim/wiki-content/internal/cli"

func main() {
	cmd.Execute()
}
