package scorm

// Phase identifies a build stage for progress reporting
type Phase string

// Build phases
const (
	PhaseRender   Phase = "render"
	PhaseAssemble Phase = "assemble"
	PhaseValidate Phase = "validate"
	PhaseDone     Phase = "done"
)

// ProgressEvent is one advisory progress update
type ProgressEvent struct {
	Phase   Phase  `json:"phase"`
	Percent int    `json:"percent"`
	Message string `json:"message"`
}

// ProgressSink delivers progress events to an optional listener. Emit never
// blocks: when the buffer is full the event is dropped. A nil sink is valid
// and discards everything.
type ProgressSink struct {
	ch chan ProgressEvent
}

// NewProgressSink creates a sink with the given buffer size
func NewProgressSink(buffer int) *ProgressSink {
	if buffer <= 0 {
		buffer = 16
	}
	return &ProgressSink{ch: make(chan ProgressEvent, buffer)}
}

// Events returns the receive side of the sink
func (s *ProgressSink) Events() <-chan ProgressEvent {
	if s == nil {
		return nil
	}
	return s.ch
}

// Emit sends an event without blocking
func (s *ProgressSink) Emit(phase Phase, percent int, message string) {
	if s == nil {
		return
	}
	select {
	case s.ch <- ProgressEvent{Phase: phase, Percent: percent, Message: message}:
	default:
	}
}

// Close closes the event channel. The build closes the sink exactly once when
// it finishes, successfully or not.
func (s *ProgressSink) Close() {
	if s == nil {
		return
	}
	close(s.ch)
}
