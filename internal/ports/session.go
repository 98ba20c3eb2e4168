package ports

import "context"

// LineSession is a line-oriented conversation with a long-running process.
// ReadLine returns io.EOF once the process closed its output.
type LineSession interface {
	SendLine(ctx context.Context, line string) error
	ReadLine(ctx context.Context) (string, error)
}
