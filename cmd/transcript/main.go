// Command transcript prints the article rebuilt from a YouTube video's captions.
//
//	transcript https://www.youtube.com/watch?v=dQw4w9WgXcQ
//	transcript --lang ru --html dQw4w9WgXcQ
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand(os.Getenv)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
