package handler

// DefaultBlockSize is the size of the staging block used to coalesce
// records into physical writes during Process.
const DefaultBlockSize = 64 * 1024

// Option configures a Buffered sink
type Option func(*options)

type options struct {
	blockSize  int
	immediate  bool
	maxPending int
	onError    func(error)
}

func defaultOptions() options {
	return options{blockSize: DefaultBlockSize}
}

// WithBlockSize sets the staging block size. Non-positive values keep the
// default.
func WithBlockSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.blockSize = n
		}
	}
}

// WithImmediate makes Output write synchronously instead of queueing
func WithImmediate(on bool) Option {
	return func(o *options) {
		o.immediate = on
	}
}

// WithMaxPending caps the bytes waiting for the next Process. Records that
// would exceed the cap are dropped and counted. Zero means unlimited.
func WithMaxPending(bytes int) Option {
	return func(o *options) {
		if bytes >= 0 {
			o.maxPending = bytes
		}
	}
}

// WithOnError registers an observer for device write errors. It is called
// after the sink has released its locks.
func WithOnError(fn func(error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}
