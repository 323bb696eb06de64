package main

import (
	"context"
	"fmt"
	"os"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/logger"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
)

type CLI struct {
	Extract  ExtractCommand  `cmd:"extract" help:"Fetch a Wikipedia article and print its cleaned text."`
	Generate GenerateCommand `cmd:"generate" help:"Generate a quiz for a Wikipedia article without storing it."`
}

func main() {
	var cli CLI
	ctx := context.Background()
	kctx := kong.Parse(&cli,
		kong.Name("wikiquiz"),
		kong.Description("Turn Wikipedia articles into multiple-choice quizzes."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	err := kctx.Run()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// initLogger logs to stderr so stdout carries only the document.
func initLogger(level string) *zap.Logger {
	if err := logger.Initialize(config.LoggerConfig{Level: level, Env: "development"}); err != nil {
		fmt.Fprintln(os.Stderr, "invalid log level, using info:", err)
		_ = logger.Initialize(config.LoggerConfig{Level: "info", Env: "development"})
	}
	return logger.Get()
}
