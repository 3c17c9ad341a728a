// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mutex provides the reader/writer coordinator that serializes
// all structural mutation of a node tree.
//
// A [Mutex] distinguishes three kinds of sections:
//
//   - read sections ([Mutex.ReadAccess]), which may run concurrently and
//     may nest, and during which no exclusive section can run;
//   - write sections ([Mutex.WriteAccess]), of which at most one runs at a
//     time. A write section does not exclude readers by itself, so that
//     change listeners called by the writer can read the tree;
//   - exclusive sections ([Mutex.Exclusive]), run by the writer for the
//     actual state changes. They wait for all readers to leave and must
//     never call user code.
//
// There is no goroutine identity: a goroutine that is inside a read or write
// section and needs a structural change must use [Mutex.PostWriteRequest],
// which queues the request instead of blocking on itself.
package mutex

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
)

// Mutex is a reader/writer coordinator with a write request queue.
// The zero value is not usable; use [New].
type Mutex struct {
	mu   sync.Mutex
	cond *sync.Cond

	// readers is the number of active read sections.
	readers int

	// writing is whether a write section is active.
	writing bool

	// exclusive is whether the writer is inside an exclusive section.
	exclusive bool

	// pending are the queued write requests, run in order.
	pending []func()
}

// New returns a new [Mutex].
func New() *Mutex {
	m := &Mutex{}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// ReadAccess runs fn as a read section. Read sections may run
// concurrently with each other and with the non-exclusive parts of a
// write section, and may be nested. If this is the last read section to
// end and write requests are queued, they are run before returning.
func (m *Mutex) ReadAccess(fn func()) {
	m.mu.Lock()
	for m.exclusive {
		m.cond.Wait()
	}
	m.readers++
	m.mu.Unlock()
	defer m.exitRead()
	fn()
}

func (m *Mutex) exitRead() {
	m.mu.Lock()
	m.readers--
	run := m.readers == 0 && !m.writing && len(m.pending) > 0
	m.mu.Unlock()
	m.cond.Broadcast()
	if run {
		m.WriteAccess(func() {})
	}
}

// WriteAccess runs fn as a write section, waiting for any other
// write section to end. Write requests posted while fn runs are run
// after it, before WriteAccess returns. WriteAccess must not be called
// from inside a read or write section on the same call stack; use
// [Mutex.PostWriteRequest] there.
func (m *Mutex) WriteAccess(fn func()) {
	m.mu.Lock()
	for m.writing {
		m.cond.Wait()
	}
	m.writing = true
	m.mu.Unlock()
	panicking := true
	defer func() {
		m.exitWrite(panicking)
	}()
	fn()
	m.drain()
	panicking = false
}

// exitWrite ends the write section even if fn panicked. Requests posted
// after the final drain are run before returning, or in a new goroutine
// while a panic is unwinding the stack.
func (m *Mutex) exitWrite(panicking bool) {
	m.mu.Lock()
	m.writing = false
	m.exclusive = false
	run := m.readers == 0 && len(m.pending) > 0
	m.mu.Unlock()
	m.cond.Broadcast()
	if !run {
		return
	}
	if panicking {
		go m.WriteAccess(func() {})
		return
	}
	m.WriteAccess(func() {})
}

// drain runs queued write requests until the queue is empty.
// It must be called by the active writer.
func (m *Mutex) drain() {
	for {
		m.mu.Lock()
		if len(m.pending) == 0 {
			m.mu.Unlock()
			return
		}
		f := m.pending[0]
		m.pending = m.pending[1:]
		m.mu.Unlock()
		runRequest(f)
	}
}

// runRequest runs a queued request. Its poster is no longer on the stack,
// so a panic is logged instead of propagated.
func runRequest(f func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("mutex: write request panicked", "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
		}
	}()
	f()
}

// PostWriteRequest runs fn with write access. If no read or write
// section is active, fn runs immediately in the calling goroutine.
// Otherwise it is queued and run at the end of the current write section,
// or when the last read section ends, and PostWriteRequest returns
// without waiting for it.
func (m *Mutex) PostWriteRequest(fn func()) {
	m.mu.Lock()
	if m.writing || m.readers > 0 {
		m.pending = append(m.pending, fn)
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()
	m.WriteAccess(fn)
}

// Exclusive runs fn while no read section is active. It must be called
// from inside a write section, and fn must not call back into user code,
// since a reader on the same call stack would wait forever.
func (m *Mutex) Exclusive(fn func()) {
	m.mu.Lock()
	if !m.writing {
		m.mu.Unlock()
		panic("mutex.Exclusive: called outside of a write section")
	}
	for m.readers > 0 {
		m.cond.Wait()
	}
	m.exclusive = true
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.exclusive = false
		m.mu.Unlock()
		m.cond.Broadcast()
	}()
	fn()
}

// IsReadAccess returns whether any read section is active.
func (m *Mutex) IsReadAccess() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readers > 0
}

// IsWriteAccess returns whether a write section is active.
func (m *Mutex) IsWriteAccess() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writing
}

// Pending returns the number of queued write requests.
func (m *Mutex) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}
