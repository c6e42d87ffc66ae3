package main

import (
	"fmt"
	"os"

	"github.com/devguild/devlin/cmd"
)

func main() {
	err := cmd.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
