package domain

import "path/filepath"

type Roots struct {
	Destination string
	Staging     string
}

type Placement struct {
	Destination string
	Staging     string
}

func (r Roots) For(id ItemID) Placement {
	name := id.String()
	return Placement{
		Destination: filepath.Join(r.Destination, name),
		Staging:     filepath.Join(r.Staging, name),
	}
}

type Action string

const (
	ActionSkip     Action = "skip"
	ActionReuse    Action = "reuse"
	ActionDownload Action = "download"
)

func (a Action) Label() string {
	switch a {
	case ActionSkip:
		return "already installed"
	case ActionReuse:
		return "copied from staging"
	case ActionDownload:
		return "downloaded"
	default:
		return string(a)
	}
}

// Cleanup records which directories a clean run removed before acting.
type Cleanup struct {
	Destination bool
	Staging     bool
}

func (c Cleanup) Any() bool {
	return c.Destination || c.Staging
}
