package feed

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const maxBackoff = 30 * time.Second

// Subscriber maintains a websocket connection to a signal stream and hands
// every raw text frame to the registered callbacks. It does no decoding; the
// payload goes to the codec downstream, which is the validation gate.
type Subscriber struct {
	url    string
	logger *zap.Logger

	mu        sync.Mutex
	conn      *websocket.Conn
	callbacks []func(payload []byte)
}

func NewSubscriber(url string, logger *zap.Logger) *Subscriber {
	return &Subscriber{
		url:    url,
		logger: logger,
	}
}

// OnSignal registers a callback for incoming frames. Callbacks run on the
// read loop goroutine, so they should hand off anything slow.
func (s *Subscriber) OnSignal(callback func(payload []byte)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks = append(s.callbacks, callback)
}

// Run dials the stream and keeps it alive until the context is cancelled,
// redialing with exponential backoff after read errors.
func (s *Subscriber) Run(ctx context.Context) {
	backoff := time.Second
	for {
		done, err := s.connect()
		if err != nil {
			s.logger.Error("feed dial failed", zap.String("url", s.url), zap.Error(err))
		} else {
			backoff = time.Second
			select {
			case <-done:
			case <-ctx.Done():
				s.closeConn()
				return
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		if backoff < maxBackoff {
			backoff *= 2
		}
	}
}

func (s *Subscriber) connect() (chan struct{}, error) {
	c, _, err := websocket.DefaultDialer.Dial(s.url, nil)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.conn = c
	s.mu.Unlock()

	s.logger.Info("feed connected", zap.String("url", s.url))

	done := make(chan struct{})
	go s.readLoop(c, done)
	return done, nil
}

func (s *Subscriber) readLoop(c *websocket.Conn, done chan struct{}) {
	defer close(done)
	defer c.Close()

	for {
		_, message, err := c.ReadMessage()
		if err != nil {
			s.logger.Warn("feed read error", zap.Error(err))
			return
		}

		s.mu.Lock()
		cbs := make([]func([]byte), len(s.callbacks))
		copy(cbs, s.callbacks)
		s.mu.Unlock()

		for _, cb := range cbs {
			cb(message)
		}
	}
}

func (s *Subscriber) closeConn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
}
