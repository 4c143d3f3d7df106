package main

import "github.com/eventlane/server/cmd/server/cmd"

func main() {
	cmd.Execute()
}
