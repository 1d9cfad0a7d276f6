package main

import "github.com/Nyeloz/VibeGuard/cmd"

func main() {
	cmd.Execute()
}
