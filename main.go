package main

import "github.com/kozaktomas/companion-backend/cmd"

func main() {
	cmd.Execute()
}
