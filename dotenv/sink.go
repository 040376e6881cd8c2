package dotenv

import "go.uber.org/zap"

// Sink receives leveled diagnostics from the loader. The loader never
// depends on what a Sink does with them.
type Sink interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

// NopSink discards every diagnostic.
type NopSink struct{}

func (NopSink) Debug(string) {}
func (NopSink) Info(string)  {}
func (NopSink) Warn(string)  {}
func (NopSink) Error(string) {}

type zapSink struct {
	logger *zap.Logger
}

// NewZapSink forwards diagnostics to a zap logger. A nil logger yields a
// NopSink.
func NewZapSink(logger *zap.Logger) Sink {
	if logger == nil {
		return NopSink{}
	}
	return zapSink{logger: logger.Named("dotenv")}
}

func (s zapSink) Debug(msg string) { s.logger.Debug(msg) }
func (s zapSink) Info(msg string)  { s.logger.Info(msg) }
func (s zapSink) Warn(msg string)  { s.logger.Warn(msg) }
func (s zapSink) Error(msg string) { s.logger.Error(msg) }
