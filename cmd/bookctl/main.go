package main

import "bookreview-backend/cmd/bookctl/commands"

func main() {
	commands.Execute()
}
