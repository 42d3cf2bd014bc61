package main

import "github.com/robmoss/asciinema-scripted/cmd"

func main() {
	cmd.Execute()
}
