// Package flushio provides flush-aware writers for machine output: the VM
// buffers freely between words, but must be able to force everything out
// before reading input or reporting a halt.
package flushio

import (
	"bufio"
	"io"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

var discard WriteFlusher = nopFlusher{io.Discard}

// NewWriteFlusher adapts any writer. Writers that cannot hold data back
// (discard, in-memory buffers, anything already flushable) pass through
// with a no-op Flush; everything else gets a bufio wrapper.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	if w == io.Discard {
		return discard
	}

	if wf, is := w.(WriteFlusher); is {
		return wf
	}

	// bytes.Buffer and strings.Builder shaped things hold nothing back
	type buffer interface {
		io.Writer
		Cap() int
		Len() int
		Grow(n int)
		Reset()
	}
	if _, isBuffer := w.(buffer); isBuffer {
		return nopFlusher{w}
	}

	return bufio.NewWriter(w)
}

type nopFlusher struct{ io.Writer }

func (nf nopFlusher) Flush() error { return nil }

// WriteFlushers fans writes out to several writers, failing on the first
// error or short write.
type WriteFlushers []WriteFlusher

func (wfs WriteFlushers) Write(p []byte) (n int, err error) {
	for _, wf := range wfs {
		n, err = wf.Write(p)
		if err != nil {
			return n, err
		}
		if n != len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

func (wfs WriteFlushers) Flush() (err error) {
	for _, wf := range wfs {
		if ferr := wf.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}

// Multi combines two flushable writers, flattening nested fan-outs and
// dropping nils.
func Multi(a, b WriteFlusher) WriteFlusher {
	var all WriteFlushers
	for _, one := range []WriteFlusher{a, b} {
		if many, ok := one.(WriteFlushers); ok {
			all = append(all, many...)
		} else if one != nil {
			all = append(all, one)
		}
	}
	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	}
	return all
}
