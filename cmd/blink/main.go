package main

import "github.com/devesh1011/EtherBlinks/cmd/blink/cmd"

func main() {
	cmd.Execute()
}
