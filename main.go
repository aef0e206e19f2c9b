package main

import "github.com/rook-computer/codeshot/internal/cli"

func main() {
	cli.Execute()
}
