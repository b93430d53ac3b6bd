package main

import "github.com/notargets/gokinetics/cmd"

func main() {
	cmd.Execute()
}
