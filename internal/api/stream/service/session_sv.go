package streamService

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/context"

	"PokerVision/internal/api/stream"
	"PokerVision/internal/entity"
	"PokerVision/pkg/emostream"
	"PokerVision/pkg/framegrab"
)

// session owns the upstream socket, the frame source, and the reconnect
// counter for one attached client. All three die together in Close.
type session struct {
	svc    *sessionService
	id     string
	source framegrab.Source
	sink   UpdateSink

	ctx    context.Context
	cancel context.CancelFunc

	captureCh chan struct{}
	done      chan struct{}
	doneOnce  sync.Once

	mu        sync.Mutex
	conn      emostream.IConn
	state     entity.SessionState
	status    string
	faces     []entity.TrackedFace
	emotions  []entity.EmotionScore
	retries   int
	attached  bool
	inFlight  bool
	startedAt time.Time
}

func (s *sessionService) NewSession(source framegrab.Source, sink UpdateSink) (ISession, error) {
	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	sess := &session{
		svc:       s,
		id:        id,
		source:    source,
		sink:      sink,
		ctx:       ctx,
		cancel:    cancel,
		captureCh: make(chan struct{}, 1),
		done:      make(chan struct{}),
		attached:  true,
		startedAt: time.Now(),
	}

	go sess.captureLoop()

	return sess, nil
}

func (s *session) ID() string {
	return s.id
}

func (s *session) State() entity.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *session) Done() <-chan struct{} {
	return s.done
}

// Connect opens the upstream socket. Idempotent while a connection is open.
// A fresh call on a failed session starts over with a clean retry counter.
func (s *session) Connect() error {
	s.mu.Lock()
	if !s.attached {
		s.mu.Unlock()
		return nil
	}
	if s.conn != nil {
		s.mu.Unlock()
		return nil
	}
	if s.state == entity.SessionStateFailed {
		s.retries = 0
	}
	s.state = entity.SessionStateConnecting
	s.status = ""
	s.mu.Unlock()

	s.pushStatus()

	conn, err := s.svc.dialer.Dial(s.svc.cfg)
	if err != nil {
		return s.handleDialError(err)
	}

	s.mu.Lock()
	if !s.attached {
		s.mu.Unlock()
		conn.Close()
		return nil
	}
	s.conn = conn
	s.state = entity.SessionStateStreaming
	s.status = ""
	s.inFlight = false
	s.mu.Unlock()

	s.pushStatus()
	s.saveSnapshot()

	go s.readLoop(conn)
	s.requestNextFrame()

	return nil
}

// Close detaches the client: it closes the socket, releases the frame
// source, and suppresses any reconnection already in flight.
func (s *session) Close() {
	s.mu.Lock()
	if !s.attached {
		s.mu.Unlock()
		return
	}
	s.attached = false
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()

	s.cancel()

	if conn != nil {
		conn.Close()
	}

	if err := s.source.Close(); err != nil {
		s.svc.log.Warnf("Error releasing frame source for session %s: %v", s.id, err)
	}

	ctx, cancelStore := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancelStore()
	if err := s.svc.store.DeleteSnapshot(ctx, s.id); err != nil {
		s.svc.log.Warnf("Error deleting snapshot for session %s: %v", s.id, err)
	}

	s.signalDone()
}

func (s *session) readLoop(conn emostream.IConn) {
	for {
		result, err := conn.ReadResult()
		if err != nil {
			s.handleSocketClose()
			return
		}

		s.handleResult(result)
	}
}

func (s *session) handleResult(result *emostream.StreamResult) {
	s.mu.Lock()
	s.inFlight = false

	// Server-reported error is fatal for the session.
	if result.Error != "" {
		s.state = entity.SessionStateFailed
		s.status = result.Error
		conn := s.conn
		s.conn = nil
		s.mu.Unlock()

		s.svc.log.Errorf("Emotion stream error for session %s: %s", s.id, result.Error)

		if conn != nil {
			conn.Close()
		}

		s.pushStatus()
		s.saveSnapshot()
		s.signalDone()
		return
	}

	var predictions []emostream.Prediction
	warning := ""
	if result.Face != nil {
		predictions = result.Face.Predictions
		warning = result.Face.Warning
	}

	if len(predictions) == 0 {
		s.faces = nil
		s.emotions = nil
		if warning == "" {
			warning = "No faces detected"
		}
		s.status = strings.TrimSuffix(warning, ".")
		s.mu.Unlock()

		s.pushStatus()
		s.pushUpdate()
		s.saveSnapshot()
		s.requestNextFrame()
		return
	}

	faces := make([]entity.TrackedFace, 0, len(predictions))
	for _, prediction := range predictions {
		faces = append(faces, entity.TrackedFace{
			BBox:     prediction.BBox,
			Emotions: prediction.Emotions,
		})
	}

	s.faces = faces
	s.emotions = faces[0].Emotions
	s.status = ""
	s.mu.Unlock()

	s.pushUpdate()
	s.saveSnapshot()
	s.requestNextFrame()
}

// handleSocketClose runs when the upstream socket drops. Transient closes
// reconnect for as long as the client stays attached.
func (s *session) handleSocketClose() {
	s.mu.Lock()
	if !s.attached || s.state == entity.SessionStateFailed {
		s.mu.Unlock()
		return
	}
	s.conn = nil
	s.inFlight = false
	s.state = entity.SessionStateReconnecting
	s.status = "Reconnecting to emotion stream"
	s.mu.Unlock()

	s.svc.log.Warnf("Emotion stream closed for session %s, reconnecting", s.id)

	s.pushStatus()
	s.sleepBeforeReconnect()

	if err := s.Connect(); err != nil {
		s.svc.log.Errorf("Reconnect failed for session %s: %v", s.id, err)
	}
}

// handleDialError counts a transport error against the ceiling; past the
// ceiling the session fails terminally, naming the configured environment.
func (s *session) handleDialError(err error) error {
	s.mu.Lock()
	if !s.attached {
		s.mu.Unlock()
		return nil
	}

	s.retries++
	if s.retries > s.svc.opts.RetryCeiling {
		s.state = entity.SessionStateFailed
		s.status = fmt.Sprintf(
			"emotion stream unreachable after %d retries (%s environment)",
			s.svc.opts.RetryCeiling, s.svc.cfg.Environment,
		)
		s.mu.Unlock()

		s.svc.log.Errorf("Session %s exceeded retry ceiling: %v", s.id, err)

		s.pushStatus()
		s.saveSnapshot()
		s.signalDone()
		return err
	}

	attempt := s.retries
	s.state = entity.SessionStateReconnecting
	s.status = fmt.Sprintf("Connection attempt %d failed, retrying", attempt)
	s.mu.Unlock()

	s.svc.log.Warnf("Dial failed for session %s (attempt %d): %v", s.id, attempt, err)

	s.pushStatus()
	s.sleepBeforeReconnect()

	return s.Connect()
}

// handleSendError counts the failure and closes the socket; the read loop
// picks up the close and drives the reconnect.
func (s *session) handleSendError(conn emostream.IConn, err error) {
	s.mu.Lock()
	s.inFlight = false

	if !s.attached || s.state == entity.SessionStateFailed {
		s.mu.Unlock()
		return
	}

	s.retries++
	if s.retries > s.svc.opts.RetryCeiling {
		s.state = entity.SessionStateFailed
		s.status = fmt.Sprintf(
			"emotion stream unreachable after %d retries (%s environment)",
			s.svc.opts.RetryCeiling, s.svc.cfg.Environment,
		)
		s.conn = nil
		s.mu.Unlock()

		s.svc.log.Errorf("Session %s exceeded retry ceiling on send: %v", s.id, err)

		conn.Close()
		s.pushStatus()
		s.saveSnapshot()
		s.signalDone()
		return
	}
	s.mu.Unlock()

	s.svc.log.Warnf("Send failed for session %s: %v", s.id, err)
	conn.Close()
}

func (s *session) sleepBeforeReconnect() {
	if s.svc.opts.ReconnectDelay <= 0 {
		return
	}

	select {
	case <-s.ctx.Done():
	case <-time.After(s.svc.opts.ReconnectDelay):
	}
}

func (s *session) pushUpdate() {
	s.mu.Lock()
	msg := stream.UpdateMessage{
		Type:      stream.ServerMessageUpdate,
		SessionID: s.id,
		Faces:     s.faces,
		Emotions:  s.emotions,
		Top:       s.svc.insight.TopEmotions(s.emotions, 3),
		Widgets:   s.svc.insight.Widgets(s.emotions),
		Read:      s.svc.insight.Read(s.emotions),
	}
	s.mu.Unlock()

	if err := s.sink.PushUpdate(msg); err != nil {
		s.svc.log.Warnf("Error pushing update for session %s: %v", s.id, err)
	}
}

func (s *session) pushStatus() {
	s.mu.Lock()
	msg := stream.StatusMessage{
		Type:      stream.ServerMessageStatus,
		SessionID: s.id,
		State:     s.state.String(),
		Message:   s.status,
	}
	s.mu.Unlock()

	if err := s.sink.PushStatus(msg); err != nil {
		s.svc.log.Warnf("Error pushing status for session %s: %v", s.id, err)
	}
}

func (s *session) saveSnapshot() {
	s.mu.Lock()
	snapshot := entity.SessionSnapshot{
		ID:          s.id,
		State:       s.state.String(),
		Status:      s.status,
		Environment: s.svc.cfg.Environment,
		TopEmotions: s.svc.insight.TopEmotions(s.emotions, 3),
		UpdatedAt:   time.Now(),
	}
	if len(s.emotions) > 0 {
		snapshot.ReadLabel = s.svc.insight.Read(s.emotions).Label
	}
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.svc.store.SaveSnapshot(ctx, snapshot); err != nil {
		s.svc.log.Warnf("Error saving snapshot for session %s: %v", s.id, err)
	}
}

func (s *session) signalDone() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}
