package main

import "github.com/robertranjan/gh-top-projects/cmd"

func main() {
	cmd.Execute()
}
