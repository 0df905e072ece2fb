package comm

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"
)

var settings = &struct {
	noProgress bool
	quiet      bool
	verbose    bool
	json       bool
}{
	false,
	false,
	false,
	false,
}

// Configure sets all logging options in one go
func Configure(noProgress, quiet, verbose, jsonMode bool) {
	settings.noProgress = noProgress
	settings.quiet = quiet
	settings.verbose = verbose
	settings.json = jsonMode
}

type jsonMessage map[string]interface{}

// Opf prints a formatted string informing the user on what operation
// we're doing
func Opf(format string, args ...interface{}) {
	Logf("• %s", fmt.Sprintf(format, args...))
}

// Statf prints a formatted string informing the user how an operation
// went
func Statf(format string, args ...interface{}) {
	Logf("✓ %s", fmt.Sprintf(format, args...))
}

// Log sends an informational message to the client
func Log(msg string) {
	Logl("info", msg)
}

// Logf sends a formatted informational message to the client
func Logf(format string, args ...interface{}) {
	Loglf("info", format, args...)
}

// Debugf sends a debug message, shown only in verbose mode
func Debugf(format string, args ...interface{}) {
	Loglf("debug", format, args...)
}

// Warn lets the user know about a problem that's non-critical
func Warn(msg string) {
	Logl("warning", msg)
}

// Warnf is a formatted variant of Warn
func Warnf(format string, args ...interface{}) {
	Loglf("warning", format, args...)
}

// Logl logs a message of a given level
func Logl(level string, msg string) {
	send("log", jsonMessage{
		"message": msg,
		"level":   level,
	})
}

// Loglf logs a formatted message of a given level
func Loglf(level string, format string, args ...interface{}) {
	Logl(level, fmt.Sprintf(format, args...))
}

// Die exits with a non-zero exit code after giving a reason to the
// client
func Die(msg string) {
	send("error", jsonMessage{
		"message": msg,
	})
}

// Dief is a formatted variant of Die
func Dief(format string, args ...interface{}) {
	Die(fmt.Sprintf(format, args...))
}

// sends a message to the client
func send(msgType string, obj jsonMessage) {
	if settings.json {
		obj["type"] = msgType
		obj["time"] = time.Now().UTC().Unix()
		if msgType == "log" && obj["level"] == "debug" && !settings.verbose {
			return
		}

		sendJSON(obj)
		if msgType == "error" {
			os.Exit(1)
		}
		return
	}

	switch msgType {
	case "log":
		switch obj["level"] {
		case "info":
			if !settings.quiet {
				log.Println(obj["message"])
			}
		case "debug":
			if !settings.quiet && settings.verbose {
				log.Println(obj["message"])
			}
		default:
			log.Printf("%s: %s\n", obj["level"], obj["message"])
		}
	case "error":
		EndProgress()
		log.Println(obj["message"])
		os.Exit(1)
	case "progress":
		// handled by the progress printer outside json mode
	}
}

func sendJSON(obj jsonMessage) {
	data, err := json.Marshal(obj)
	if err != nil {
		log.Printf("could not encode message: %s\n", err)
		return
	}
	fmt.Println(string(data))
}
