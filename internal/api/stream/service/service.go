package streamService

import (
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	insightService "PokerVision/internal/api/insight/service"
	"PokerVision/internal/api/stream"
	"PokerVision/internal/entity"
	"PokerVision/pkg/emostream"
	"PokerVision/pkg/framegrab"
	redisPkg "PokerVision/pkg/redis"
	"PokerVision/pkg/utils"
)

// UpdateSink receives the session's outbound envelopes. The gateway handler
// backs it with the client websocket; the CLI prints.
type UpdateSink interface {
	PushUpdate(msg stream.UpdateMessage) error
	PushStatus(msg stream.StatusMessage) error
}

// ISession is one live stream: one upstream socket plus one frame source.
type ISession interface {
	ID() string
	Connect() error
	Close()
	State() entity.SessionState
	Status() string
	Done() <-chan struct{}
}

type ISessionService interface {
	NewSession(source framegrab.Source, sink UpdateSink) (ISession, error)
}

type Options struct {
	RetryCeiling   int
	ReconnectDelay time.Duration
}

func DefaultOptions() Options {
	opts := Options{
		RetryCeiling:   3,
		ReconnectDelay: 500 * time.Millisecond,
	}

	if raw := os.Getenv("STREAM_RETRY_CEILING"); raw != "" {
		if ceiling, err := strconv.Atoi(raw); err == nil && ceiling > 0 {
			opts.RetryCeiling = ceiling
		}
	}

	return opts
}

type sessionService struct {
	log     *logrus.Logger
	dialer  emostream.IDialer
	cfg     emostream.Config
	store   redisPkg.ISessionStore
	insight insightService.IInsightService
	utils   utils.IUtils
	opts    Options
}

func NewSessionService(
	log *logrus.Logger,
	dialer emostream.IDialer,
	cfg emostream.Config,
	store redisPkg.ISessionStore,
	insight insightService.IInsightService,
	utils utils.IUtils,
	opts Options,
) ISessionService {
	if opts.RetryCeiling <= 0 {
		opts.RetryCeiling = 3
	}

	return &sessionService{
		log:     log,
		dialer:  dialer,
		cfg:     cfg,
		store:   store,
		insight: insight,
		utils:   utils,
		opts:    opts,
	}
}
