package status

import (
	"time"

	"github.com/killallgit/tadabbur/pkg/process"
)

// StatusUpdateMsg replaces the status text, typically with the server's
// loading message
type StatusUpdateMsg struct {
	Status string
	State  process.State
}

// StartStreamingMsg indicates a turn has started
type StartStreamingMsg struct {
	State process.State
}

// StopStreamingMsg indicates the turn has finished
type StopStreamingMsg struct{}

// SetProcessStateMsg sets the current process state and icon
type SetProcessStateMsg struct {
	State process.State
}

// SetModelMsg sets the model name shown at the right of the bar
type SetModelMsg struct {
	Model string
}

// TickMsg updates the timer
type TickMsg time.Time
