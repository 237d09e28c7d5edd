package main

import "github.com/arl/annulus/cmd/annulus/cmd"

func main() {
	cmd.Execute()
}
