package comm

import (
	"fmt"
	"os"
	"strings"
)

const maxLabelLength = 40

var progressActive = false
var lastProgressAlpha = 0.0
var progressLabel = ""

// StartProgress begins a period in which progress is regularly
// printed
func StartProgress() {
	progressActive = true
	lastProgressAlpha = 0.0
	progressLabel = ""
}

// Progress announces the degree of completion of a task, in [0,1]
func Progress(alpha float64) {
	if !progressActive {
		return
	}
	lastProgressAlpha = alpha

	if settings.json {
		send("progress", jsonMessage{
			"progress":   alpha,
			"percentage": alpha * 100.0,
		})
		return
	}

	printProgress()
}

// ProgressLabel sets the string printed next to the progress
// indicator
func ProgressLabel(label string) {
	if len(label) > maxLabelLength {
		label = fmt.Sprintf("...%s", label[len(label)-(maxLabelLength-3):])
	}
	progressLabel = label

	if progressActive && !settings.json {
		printProgress()
	}
}

// EndProgress ends a progress period, clearing the indicator line
func EndProgress() {
	if !progressActive {
		return
	}
	progressActive = false

	if !settings.json && !settings.quiet && !settings.noProgress {
		fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", maxLabelLength+10))
	}
}

func printProgress() {
	if settings.quiet || settings.noProgress {
		return
	}
	fmt.Fprintf(os.Stderr, "\r%6.2f%% %s", lastProgressAlpha*100.0, progressLabel)
}
