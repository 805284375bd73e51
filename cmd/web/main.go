package main

import (
	"context"
	"log/slog"
	"os"

	"mdscli/internal/app"
)

func main() {
	application, err := app.NewApplication()
	if err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}

	if err := application.Run(context.Background()); err != nil {
		application.Logger.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
