// Copyright © 2018 The ELPS authors

package dapserver_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/giorgioyu125/toylisp/debugger/dapserver"
	"github.com/stretchr/testify/assert"
)

func TestPauseIsIdempotentAndResumeUnblocksWait(t *testing.T) {
	var out bytes.Buffer
	s := dapserver.New(&bytes.Buffer{}, &out)

	assert.False(t, s.IsPaused())
	s.Pause()
	assert.True(t, s.IsPaused())
	s.Pause() // idempotent: must not deadlock or re-close the resume channel
	assert.True(t, s.IsPaused())

	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()

	s.Resume()
	assert.False(t, s.IsPaused())

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not unblock after Resume")
	}
}

func TestWaitReturnsImmediatelyWhenNotPaused(t *testing.T) {
	s := dapserver.New(&bytes.Buffer{}, &bytes.Buffer{})
	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait should return immediately when the debuggee isn't paused")
	}
}

func TestHasBreakpointDefaultsToFalse(t *testing.T) {
	s := dapserver.New(&bytes.Buffer{}, &bytes.Buffer{})
	assert.False(t, s.HasBreakpoint("anything"))
}
