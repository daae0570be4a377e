package stream

// TailState is the state of the trailing assistant entry.
type TailState int

const (
	TailAbsent TailState = iota
	TailPlaceholder
	TailStreaming
	TailFinalized
)

// String returns the string representation of the state
func (s TailState) String() string {
	switch s {
	case TailAbsent:
		return "absent"
	case TailPlaceholder:
		return "empty-placeholder"
	case TailStreaming:
		return "partially-streamed"
	case TailFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}
