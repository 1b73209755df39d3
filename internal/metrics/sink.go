// Package metrics records evaluation reports of training runs.
package metrics

//go:generate mockgen -source=sink.go -destination=mocks/mock_sink.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"bankloan/internal/evaluate"
)

var ErrSink = errors.New("metrics: sink write failed")

// Record is one evaluated run.
type Record struct {
	RunID     string           `json:"run_id"`
	Algorithm string           `json:"algorithm"`
	Timestamp time.Time        `json:"timestamp"`
	Report    *evaluate.Report `json:"metrics"`
}

type Sink interface {
	Write(ctx context.Context, r Record) error
	Close() error
}

// Options selects a sink: a DSN wins over a file path; neither gives Nop.
type Options struct {
	DSN   string `yaml:"dsn"`
	Table string `yaml:"table" validate:"omitempty,max=63"`
	File  string `yaml:"file"`
}

func Open(ctx context.Context, opts Options) (Sink, error) {
	switch {
	case opts.DSN != "":
		s, err := OpenPostgres(opts.DSN, opts.Table)
		if err != nil {
			return nil, err
		}
		if err := s.EnsureTable(ctx); err != nil {
			_ = s.Close()
			return nil, err
		}
		return s, nil
	case opts.File != "":
		return NewFileSink(opts.File)
	default:
		return Nop{}, nil
	}
}

// Nop discards records.
type Nop struct{}

func (Nop) Write(context.Context, Record) error { return nil }
func (Nop) Close() error                        { return nil }
