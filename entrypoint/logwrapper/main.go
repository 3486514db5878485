package main

import (
	"os"

	"lexeme.io/postag/logger"
)

func main() {
	logger.SetupLogging()
	if len(os.Args) < 2 {
		hptLogger := logger.NewLogger("Logs wrapper")
		hptLogger.Fatal().Msg("Usage: logwrapper <executable> [args...]")
		os.Exit(1)
	}
	logger.WrapProcess(os.Args[1], os.Args[2:]...)
}
