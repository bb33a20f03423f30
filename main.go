package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	defer a.Close()

	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		if !alreadyReported(err) {
			fmt.Fprintf(os.Stderr, "Hata: %v\n", err)
		}
		a.Close()
		os.Exit(1)
	}
}
