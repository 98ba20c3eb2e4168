package domain

import (
	"errors"
	"fmt"
)

var (
	ErrConfig          = errors.New("invalid configuration")
	ErrManifestFormat  = errors.New("malformed manifest line")
	ErrProcessLaunch   = errors.New("launch download client")
	ErrChannelRead     = errors.New("read from download client")
	ErrChannelWrite    = errors.New("write to download client")
	ErrLoginFailed     = errors.New("download client login failed")
	ErrDownloadFailed  = errors.New("download failed")
	ErrProtocolTimeout = errors.New("download client did not answer in time")
	ErrStagingNotReady = errors.New("staging directory not ready")
)

// DownloadError is reported by the download client for a single item.
type DownloadError struct {
	ItemID ItemID
	Name   string
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("error downloading mod %s (%s)", e.Name, e.ItemID)
}

func (e *DownloadError) Unwrap() error {
	return ErrDownloadFailed
}
