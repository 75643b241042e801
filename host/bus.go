// Package host wraps the cpu package into a reusable runner: ROM loading,
// a free-run loop bounded by a context deadline, sequenced interrupt
// injection, and a step-back history ring. It corresponds to the "host
// driver" half of the system, as distinct from the core's pure ISA
// semantics in cpu and isa.
package host

import "github.com/sirupsen/logrus"

// OutSink implements cpu.BusWriter by logging every OUT write through a
// structured logger instead of discarding it, the way production code logs
// rather than fmt.Println's what a peripheral would otherwise consume.
// Embedding an *cpu.CPU's bus with this by default gives a Runner useful
// diagnostics without requiring a caller to supply a real device model.
type OutSink struct {
	Log *logrus.Logger
}

// NewOutSink returns an OutSink logging through log, or a fresh
// logrus.New() logger if log is nil.
func NewOutSink(log *logrus.Logger) *OutSink {
	if log == nil {
		log = logrus.New()
	}
	return &OutSink{Log: log}
}

func (s *OutSink) OUT(port, value byte) {
	s.Log.WithFields(logrus.Fields{
		"port":  port,
		"value": value,
	}).Debug("cpu: OUT")
}
