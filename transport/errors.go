package transport

import "errors"

var (
	// ErrClosed is returned by a Channel operation attempted after Close.
	ErrClosed = errors.New("channel closed")

	// ErrNoAncillaryData is returned when a socket message that was expected
	// to carry a passed file descriptor carried none.
	ErrNoAncillaryData = errors.New("no file descriptor in socket message")

	// ErrDescriptorSequenceExhausted is returned when a broadcast or receive
	// needs more socket descriptors than were bound at process start
	// (spec §4.7/§4.8, descriptor sequence 1, 3, 4, 5, ...).
	ErrDescriptorSequenceExhausted = errors.New("socket descriptor sequence exhausted")
)
