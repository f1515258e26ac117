// Command regchat is a terminal client for a drone regulation lookup backend.
package main

import "github.com/diogo/regchat/internal/commands"

func main() {
	commands.Execute()
}
