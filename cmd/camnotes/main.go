package main

import (
	"fmt"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// failure labels err for the user; run prints it and sets the exit code.
func failure(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
