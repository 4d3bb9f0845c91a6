package brochure

import "go.uber.org/zap"

const defaultEventBuffer = 8

type options struct {
	logger      *zap.Logger
	eventBuffer int
	export      ExportOptions
}

type Option func(*options)

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithEventBuffer sets how many finished uploads the loader holds before a
// decoding goroutine blocks on delivery.
func WithEventBuffer(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.eventBuffer = n
		}
	}
}

func WithExportOptions(e ExportOptions) Option {
	return func(o *options) {
		o.export = e
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:      zap.NewNop(),
		eventBuffer: defaultEventBuffer,
		export:      DefaultExportOptions(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
