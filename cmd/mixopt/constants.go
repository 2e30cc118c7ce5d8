package main

import "time"

// Log messages
const (
	logMsgSearchStarted     = "Search started"
	logMsgSearchProgress    = "Search progress"
	logMsgSearchInterrupted = "Search interrupted"
	logMsgSearchNoResult    = "Search found no admissible mix"
	logMsgSearchFinished    = "Search finished"
	logMsgShuttingDown      = "Shutting down server"
	logMsgForcedShutdown    = "Server forced to shutdown"
)

// commandLineProfile names the profile built from flags alone
const commandLineProfile = "command line"

const shutdownTimeout = 10 * time.Second
