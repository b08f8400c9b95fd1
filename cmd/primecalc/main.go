package main

import (
	"context"
	"os"

	"github.com/agbru/primecalc/internal/app"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		os.Exit(app.HandleStartupError(err, os.Stderr))
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
