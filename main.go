package main

import (
	"context"
	"io"
	"os"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func main() {
	os.Exit(root(context.Background(), os.Args[1:]...))
}
