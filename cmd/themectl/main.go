package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	root := newRootCmd(defaultEnv())
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "themectl: %v\n", err)
		os.Exit(1)
	}
}
