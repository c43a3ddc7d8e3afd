package streamService

import (
	"errors"

	"PokerVision/pkg/framegrab"
)

// requestNextFrame schedules one capture. The channel has capacity one, so
// requests coalesce instead of stacking up: at most one frame is ever in
// flight.
func (s *session) requestNextFrame() {
	select {
	case s.captureCh <- struct{}{}:
	default:
	}
}

func (s *session) captureLoop() {
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.captureCh:
			s.capturePhoto()
		}
	}
}

// capturePhoto grabs one frame from the source, encodes it, and sends it
// upstream. Without an open connection the frame is dropped, never queued.
func (s *session) capturePhoto() {
	s.mu.Lock()
	if !s.attached {
		s.mu.Unlock()
		return
	}
	if s.conn == nil {
		s.mu.Unlock()
		s.svc.log.Warnf("No open connection for session %s, dropping frame capture", s.id)
		return
	}
	if s.inFlight {
		s.mu.Unlock()
		return
	}
	conn := s.conn
	s.mu.Unlock()

	frame, err := s.source.Grab(s.ctx)
	if err != nil {
		switch {
		case errors.Is(err, framegrab.ErrExhausted):
			s.complete()
		case errors.Is(err, framegrab.ErrClosed), s.ctx.Err() != nil:
			// Session is going away; nothing to do.
		default:
			s.svc.log.Warnf("Frame grab failed for session %s: %v", s.id, err)
		}
		return
	}

	base64Frame := s.svc.utils.EncodeFrame(frame)

	s.mu.Lock()
	if !s.attached || s.conn != conn {
		s.mu.Unlock()
		return
	}
	s.inFlight = true
	s.mu.Unlock()

	if err := conn.SendFrame(base64Frame); err != nil {
		s.handleSendError(conn, err)
	}
}

// complete finishes a session whose finite frame set ran out.
func (s *session) complete() {
	s.mu.Lock()
	s.status = "Frame set complete"
	s.mu.Unlock()

	s.svc.log.Infof("Session %s consumed its whole frame set", s.id)

	s.pushStatus()
	s.Close()
}
