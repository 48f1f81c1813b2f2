// Copyright © 2018 The ELPS authors

// Package dapserver implements a minimal Debug Adapter Protocol server
// over stdio: a Server type wrapping a DAP connection and a translate
// layer between interpreter state and DAP wire types, scaled to the
// one stepping model toylisp's flat evaluator supports: breakpoints by
// atom name and a single paused/running state, rather than a full
// call-stack inspector.
package dapserver

import (
	"bufio"
	"io"
	"sync"

	"github.com/google/go-dap"
)

// Server is a DAP server that toylisp's debugger glue (package
// debugger) drives: it owns the set of breakpointed atom names and the
// paused/resume signaling, and translates them to DAP stopped/continued
// events on the wire.
type Server struct {
	in  *bufio.Reader
	out io.Writer

	mu          sync.Mutex
	breakpoints map[string]bool
	paused      bool
	resume      chan struct{}

	outMu sync.Mutex
}

// New returns a Server reading DAP requests from r and writing DAP
// responses/events to w.
func New(r io.Reader, w io.Writer) *Server {
	return &Server{
		in:          bufio.NewReader(r),
		out:         w,
		breakpoints: make(map[string]bool),
		resume:      make(chan struct{}),
	}
}

// Serve reads and handles DAP requests until the client disconnects or
// the stream closes. It should be run in its own goroutine; toylisp's
// evaluator calls back into the Server's breakpoint/pause API from
// whichever goroutine is running Eval.
func (s *Server) Serve() error {
	for {
		msg, err := dap.ReadProtocolMessage(s.in)
		if err != nil {
			return err
		}
		s.handle(msg)
	}
}

func (s *Server) handle(msg dap.Message) {
	switch req := msg.(type) {
	case *dap.InitializeRequest:
		s.send(&dap.InitializeResponse{
			Response: newResponse(req.Seq, req.Command),
			Body: dap.Capabilities{
				SupportsConfigurationDoneRequest: true,
			},
		})
		s.send(&dap.InitializedEvent{Event: newEvent("initialized")})

	case *dap.LaunchRequest:
		s.send(&dap.LaunchResponse{Response: newResponse(req.Seq, req.Command)})

	case *dap.SetBreakpointsRequest:
		s.mu.Lock()
		s.breakpoints = make(map[string]bool, len(req.Arguments.Breakpoints))
		bps := make([]dap.Breakpoint, len(req.Arguments.Breakpoints))
		for i, bp := range req.Arguments.Breakpoints {
			// toylisp has no line-level breakpoints; a "breakpoint" here
			// names the atom to pause on via its condition text, the
			// closest DAP field to a bare symbol name.
			s.breakpoints[bp.Condition] = true
			bps[i] = dap.Breakpoint{Verified: bp.Condition != "", Line: bp.Line}
		}
		s.mu.Unlock()
		s.send(&dap.SetBreakpointsResponse{
			Response: newResponse(req.Seq, req.Command),
			Body:     dap.SetBreakpointsResponseBody{Breakpoints: bps},
		})

	case *dap.ConfigurationDoneRequest:
		s.send(&dap.ConfigurationDoneResponse{Response: newResponse(req.Seq, req.Command)})

	case *dap.ThreadsRequest:
		s.send(&dap.ThreadsResponse{
			Response: newResponse(req.Seq, req.Command),
			Body:     dap.ThreadsResponseBody{Threads: []dap.Thread{{Id: 1, Name: "main"}}},
		})

	case *dap.ContinueRequest:
		s.Resume()
		s.send(&dap.ContinueResponse{Response: newResponse(req.Seq, req.Command)})

	case *dap.PauseRequest:
		s.Pause()
		s.send(&dap.PauseResponse{Response: newResponse(req.Seq, req.Command)})

	case *dap.DisconnectRequest:
		s.Resume()
		s.send(&dap.DisconnectResponse{Response: newResponse(req.Seq, req.Command)})

	default:
		// Unhandled request types are acknowledged as a no-op failure so
		// well-behaved clients don't block waiting on a response.
		if r, ok := msg.(dap.RequestMessage); ok {
			req := r.GetRequest()
			resp := newResponse(req.Seq, req.Command)
			resp.Success = false
			s.send(&dap.ErrorResponse{Response: resp})
		}
	}
}

func (s *Server) send(msg dap.Message) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	_ = dap.WriteProtocolMessage(s.out, msg) //nolint:errcheck // best-effort write to a possibly-closed client
}

// HasBreakpoint reports whether name is a currently set breakpoint.
func (s *Server) HasBreakpoint(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.breakpoints[name]
}

// IsPaused reports whether the debuggee is currently paused.
func (s *Server) IsPaused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// Pause stops the debuggee and notifies the client with a stopped
// event. Idempotent: pausing an already-paused Server is a no-op.
func (s *Server) Pause() {
	s.mu.Lock()
	if s.paused {
		s.mu.Unlock()
		return
	}
	s.paused = true
	s.resume = make(chan struct{})
	s.mu.Unlock()
	s.send(&dap.StoppedEvent{
		Event: newEvent("stopped"),
		Body:  dap.StoppedEventBody{Reason: "breakpoint", ThreadId: 1, AllThreadsStopped: true},
	})
}

// Resume releases a paused debuggee, if any.
func (s *Server) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.paused {
		return
	}
	s.paused = false
	close(s.resume)
}

// Wait blocks until Resume is called (or returns immediately if the
// debuggee isn't paused).
func (s *Server) Wait() {
	s.mu.Lock()
	ch := s.resume
	paused := s.paused
	s.mu.Unlock()
	if !paused {
		return
	}
	<-ch
}

var seqCounter struct {
	mu sync.Mutex
	n  int
}

func nextSeq() int {
	seqCounter.mu.Lock()
	defer seqCounter.mu.Unlock()
	seqCounter.n++
	return seqCounter.n
}

func newResponse(requestSeq int, command string) dap.Response {
	return dap.Response{
		ProtocolMessage: dap.ProtocolMessage{Seq: nextSeq(), Type: "response"},
		RequestSeq:      requestSeq,
		Success:         true,
		Command:         command,
	}
}

func newEvent(event string) dap.Event {
	return dap.Event{
		ProtocolMessage: dap.ProtocolMessage{Seq: nextSeq(), Type: "event"},
		Event:           event,
	}
}
