package main

import (
	"os"
	"os/signal"

	"github.com/habedi/tokenkeeper/cmd"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// main sets up logging based on the DEBUG_TOKENKEEPER environment variable,
// starts a goroutine to listen for interrupt signals, and executes the
// root command.
func main() {
	configureLogLevelFromEnv()

	stopChan := setupInterruptListener()
	go handleInterrupt(stopChan, func(msg string) { log.Error().Msg(msg) }, os.Exit)

	cmd.Execute()
}

// configureLogLevelFromEnv enables debug logging when DEBUG_TOKENKEEPER is
// set to a truthy value and disables logging otherwise.
func configureLogLevelFromEnv() {
	switch os.Getenv("DEBUG_TOKENKEEPER") {
	case "", "false", "0":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// setupInterruptListener registers a channel for interrupt signals.
func setupInterruptListener() chan os.Signal {
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt)
	return stopChan
}

// handleInterrupt waits for a signal on stopChan, logs it, and exits.
// The log and exit functions are injected so the behavior is testable.
func handleInterrupt(stopChan chan os.Signal, fatalLog func(string), exit func(int)) {
	<-stopChan
	fatalLog("Interrupt signal received. Exiting...")
	exit(1)
}
