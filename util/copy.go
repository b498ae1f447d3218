// Package util holds small data-phase helpers that sit just past the
// negotiation boundary: once a tool's descriptors are established, it still
// needs to move bytes between them and its own business logic.
package util

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/sgsh/negotiate/transport"
)

// Relay copies the tool's own standard input out to every established
// output descriptor, and every established input descriptor in to the
// tool's own standard output, running all copies concurrently and closing
// every descriptor before returning (the data-phase counterpart of the
// negotiation this package otherwise implements).
//
// A tool with its own non-trivial business logic would not call Relay —
// it is the degenerate "just pass bytes through" case.
func Relay(est *transport.Established) (tx, rx []int64, err error) {
	tx = make([]int64, len(est.OutputFiles))
	rx = make([]int64, len(est.InputFiles))
	errs := make([]error, len(est.OutputFiles)+len(est.InputFiles))

	var wg sync.WaitGroup
	for i, f := range est.OutputFiles {
		wg.Add(1)
		go func(i int, f *os.File) {
			defer wg.Done()
			n, err := io.Copy(f, os.Stdin)
			tx[i] = n
			errs[i] = err
			f.Close()
		}(i, f)
	}
	for i, f := range est.InputFiles {
		wg.Add(1)
		go func(i int, f *os.File) {
			defer wg.Done()
			n, err := io.Copy(os.Stdout, f)
			rx[i] = n
			errs[len(est.OutputFiles)+i] = err
			f.Close()
		}(i, f)
	}
	wg.Wait()

	return tx, rx, errors.Join(errs...)
}
