package emostream

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type IConn interface {
	SendFrame(base64Frame string) error
	ReadResult() (*StreamResult, error)
	Close() error
}

type IDialer interface {
	Dial(cfg Config) (IConn, error)
}

type dialer struct {
	log              *logrus.Logger
	handshakeTimeout time.Duration
	pingInterval     time.Duration
	writeTimeout     time.Duration
}

func NewDialer(log *logrus.Logger) IDialer {
	return &dialer{
		log:              log,
		handshakeTimeout: 10 * time.Second,
		pingInterval:     30 * time.Second,
		writeTimeout:     5 * time.Second,
	}
}

func (d *dialer) Dial(cfg Config) (IConn, error) {
	wsDialer := &websocket.Dialer{
		HandshakeTimeout: d.handshakeTimeout,
	}

	url := cfg.StreamURL()
	d.log.Debugf("Connecting to emotion stream (%s environment)", cfg.Environment)

	raw, _, err := wsDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to emotion stream: %w", err)
	}

	c := &conn{
		raw:          raw,
		log:          d.log,
		writeTimeout: d.writeTimeout,
		stopPing:     make(chan struct{}),
	}

	raw.SetPingHandler(func(appData string) error {
		err := raw.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(d.writeTimeout))
		if err != nil {
			d.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	go c.keepAlive(d.pingInterval)

	return c, nil
}

type conn struct {
	raw          *websocket.Conn
	log          *logrus.Logger
	writeTimeout time.Duration

	writeMu   sync.Mutex
	stopPing  chan struct{}
	closeOnce sync.Once
}

func (c *conn) SendFrame(base64Frame string) error {
	envelope := FrameEnvelope{Data: base64Frame}

	payload, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("error encoding frame envelope: %w", err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.raw.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
		return err
	}

	if err := c.raw.WriteMessage(websocket.TextMessage, payload); err != nil {
		return fmt.Errorf("error sending frame: %w", err)
	}

	return nil
}

func (c *conn) ReadResult() (*StreamResult, error) {
	_, message, err := c.raw.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("error reading stream result: %w", err)
	}

	var result StreamResult
	if err := json.Unmarshal(message, &result); err != nil {
		return nil, fmt.Errorf("error unmarshaling stream result: %w", err)
	}

	return &result, nil
}

func (c *conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.stopPing)
		err = c.raw.Close()
	})
	return err
}

func (c *conn) keepAlive(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopPing:
			return
		case <-ticker.C:
			c.writeMu.Lock()
			err := c.raw.WriteControl(
				websocket.PingMessage,
				[]byte{},
				time.Now().Add(c.writeTimeout),
			)
			c.writeMu.Unlock()

			if err != nil {
				c.log.Warnf("Ping failed on emotion stream: %v", err)
				return
			}
		}
	}
}
