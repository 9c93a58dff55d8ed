package main

import (
	"dirmirror/cmd"
	"os"
)

func main() {
	os.Args = append(os.Args[:1], cmd.NormalizeArgs(os.Args[1:])...)
	cmd.Execute()
}
