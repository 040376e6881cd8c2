// Package dotenv loads flat KEY=VALUE files into process-wide mappings
// without overwriting anything that is already set.
//
// Supported syntax: blank lines, full-line `#` comments, an optional
// `export ` prefix, and single- or double-quoted values with \n, \r, \t
// and \\ escapes. There is no interpolation and no multi-line values.
package dotenv

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Result summarizes the most recent Load call.
type Result struct {
	Path string
	// Inserted lists keys written into at least one store, in file order.
	Inserted []string
	// Rejected lists 1-based line numbers that were not KEY=VALUE.
	Rejected []int
	// Err is ErrAlreadyLoaded, *FileNotFoundError or *ReadError when the
	// file was not processed.
	Err error
}

// Loader injects dotenv entries into an env store and a server store.
// A Loader processes its file once; call Reset to allow another pass.
type Loader struct {
	env    Store
	server Store
	sink   Sink
	rec    Recorder

	readFile func(string) ([]byte, error)

	mu     sync.Mutex
	loaded bool
	last   Result
}

// New creates a Loader writing into the OS environment and Server.
func New(sink Sink) *Loader {
	return NewWithStores(Process(), Server, sink, nil)
}

// NewWithStores creates a Loader with explicit stores. A nil env or server
// store falls back to Process() or Server. A nil sink or recorder disables
// diagnostics or metrics respectively.
func NewWithStores(env, server Store, sink Sink, rec Recorder) *Loader {
	if env == nil {
		env = Process()
	}
	if server == nil {
		server = Server
	}
	if sink == nil {
		sink = NopSink{}
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Loader{
		env:    env,
		server: server,
		sink:   sink,
		rec:    rec,

		readFile: os.ReadFile,
	}
}

// Load reads path and inserts every entry whose key is absent from a store.
// Problems are reported to the Sink and never returned.
//
// A missing or unreadable file leaves the loader unloaded, so a later Load
// on the same instance retries.
func (l *Loader) Load(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded {
		l.sink.Info(ErrAlreadyLoaded.Error())
		l.rec.RecordAttempt(OutcomeAlreadyLoaded)
		l.last = Result{Path: path, Err: ErrAlreadyLoaded}
		return
	}

	start := time.Now()
	res, err := l.process(path)
	l.rec.RecordLoadDuration(time.Since(start))
	l.last = res

	var notFound *FileNotFoundError
	switch {
	case err == nil:
		l.rec.RecordAttempt(OutcomeLoaded)
		l.loaded = true
	case errors.As(err, &notFound):
		l.sink.Warn(err.Error())
		l.rec.RecordAttempt(OutcomeNotFound)
	default:
		l.sink.Error(err.Error())
		l.rec.RecordAttempt(OutcomeReadFailed)
	}
}

// Reset marks the loader as not loaded. Stores are left untouched.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.loaded = false
}

// Loaded reports whether the file has been processed since the last Reset.
func (l *Loader) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.loaded
}

// Result returns the summary of the most recent Load call.
func (l *Loader) Result() Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.last
}

func (l *Loader) process(path string) (Result, error) {
	res := Result{Path: path}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		res.Err = &FileNotFoundError{Path: path}
		return res, res.Err
	}

	data, err := l.readFile(path)
	if err != nil {
		res.Err = &ReadError{Path: path, Err: err}
		return res, res.Err
	}

	for i, line := range strings.Split(string(data), "\n") {
		entry, ok := ParseLine(line)
		if !ok {
			if isDirective(line) {
				lineErr := &LineError{Line: i + 1, Text: strings.TrimSpace(line)}
				l.sink.Debug(lineErr.Error())
				l.rec.RecordRejectedLine()
				res.Rejected = append(res.Rejected, lineErr.Line)
			}
			continue
		}

		if l.apply(entry) {
			res.Inserted = append(res.Inserted, entry.Key)
			l.sink.Info(fmt.Sprintf("loaded env var: %s=%s", entry.Key, Mask(entry.Key, entry.Value)))
		}
	}

	return res, nil
}

// apply inserts entry into both stores where missing and reports whether
// either insert happened.
func (l *Loader) apply(entry Entry) bool {
	wasSet := false

	if l.env.SetIfAbsent(entry.Key, entry.Value) {
		l.rec.RecordInsert(TargetEnv)
		wasSet = true
	}
	if l.server.SetIfAbsent(entry.Key, entry.Value) {
		l.rec.RecordInsert(TargetServer)
		wasSet = true
	}

	return wasSet
}
