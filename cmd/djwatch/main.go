package main

import "github.com/zoeyai/djwatch/cmd/djwatch/commands"

func main() {
	commands.Execute()
}
