package driver

// Status is the lifecycle of one file in a directory run.
type Status uint8

const (
	StatusQueued Status = iota
	StatusExpanding
	StatusDone
	StatusCached
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusExpanding:
		return "expanding"
	case StatusDone:
		return "done"
	case StatusCached:
		return "cached"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// Event reports per-file progress during a directory run.
type Event struct {
	Path   string
	Status Status
}

func (o *Options) emit(path string, status Status) {
	if o.Events != nil {
		o.Events <- Event{Path: path, Status: status}
	}
}
