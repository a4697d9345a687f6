package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dshills/envnotify/internal/broadcast"
	"github.com/dshills/envnotify/internal/log"
)

func main() {
	os.Exit(run(os.Args[1:], broadcast.NewSender(), os.Stderr))
}

func run(args []string, sender broadcast.Sender, stderr io.Writer) int {
	defer log.Flush()

	// Cobra never sees the arguments; its hidden completion commands would
	// otherwise run instead of the broadcast.
	root := newRootCmd(sender, args)
	root.SetArgs([]string{})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			if ee.msg != "" {
				fmt.Fprintln(stderr, ee.msg)
			}
			return ee.code
		}
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
