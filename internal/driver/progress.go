package driver

import "time"

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageLoad reads and normalises the listing.
	StageLoad Stage = "load"
	// StageCheck runs the validation passes.
	StageCheck Stage = "check"
	// StageEncode tokenizes the listing into a PRG image.
	StageEncode Stage = "encode"
	// StageWrite writes the PRG image.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be
// goroutine-safe; CheckDir emits from several workers.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

// OnEvent sends evt, blocking if the channel is full.
func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
