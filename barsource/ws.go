package barsource

import (
	"context"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/evdnx/fluxback/logger"
	"github.com/evdnx/fluxback/types"
)

const (
	wsReconnectDelay    = 1 * time.Second
	wsMaxReconnectDelay = 30 * time.Second
)

// tradeEvent is a generic aggregate-trade message: price, quantity, and a
// millisecond trade timestamp (any symbol field is not read). Shaped after the Binance aggTrade
// stream payload consumed by the supplemental live-ingest reference.
type tradeEvent struct {
	Price     string `json:"p"`
	Quantity  string `json:"q"`
	TradeTime int64  `json:"T"`
}

// WSSource aggregates a live trade feed into fixed-duration OHLCV bars.
// Supplemental and non-default: a CSVSource is used unless the CLI is
// explicitly pointed at a websocket URL.
type WSSource struct {
	bars   chan types.Bar
	closed chan struct{}
	cancel context.CancelFunc
}

// NewWSSource dials url and begins aggregating trades into bars of
// barDuration, reconnecting with exponential backoff on disconnect.
func NewWSSource(ctx context.Context, url string, barDuration time.Duration, log logger.Logger) *WSSource {
	runCtx, cancel := context.WithCancel(ctx)
	s := &WSSource{
		bars:   make(chan types.Bar, 64),
		closed: make(chan struct{}),
		cancel: cancel,
	}
	go s.run(runCtx, url, barDuration, log)
	return s
}

// HasNext reports whether the source is still accepting bars.
func (s *WSSource) HasNext() bool {
	select {
	case <-s.closed:
		return false
	default:
		return true
	}
}

// Next blocks until the next completed bar is available, or returns
// ErrExhausted once the feed has been closed.
func (s *WSSource) Next() (types.Bar, error) {
	bar, ok := <-s.bars
	if !ok {
		return types.Bar{}, ErrExhausted
	}
	return bar, nil
}

// Close stops the ingest goroutine and releases the connection.
func (s *WSSource) Close() {
	s.cancel()
}

func (s *WSSource) run(ctx context.Context, url string, barDuration time.Duration, log logger.Logger) {
	defer close(s.closed)
	defer close(s.bars)

	delay := wsReconnectDelay
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := s.connectAndAggregate(ctx, url, barDuration); err != nil {
			log.Warn("ws_source_reconnecting", logger.Err(err), logger.Duration("delay", delay))
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			delay *= 2
			if delay > wsMaxReconnectDelay {
				delay = wsMaxReconnectDelay
			}
			continue
		}
		delay = wsReconnectDelay
	}
}

func (s *WSSource) connectAndAggregate(ctx context.Context, url string, barDuration time.Duration) error {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	var acc *bucket
	flush := time.NewTicker(barDuration)
	defer flush.Stop()

	msgs := make(chan tradeEvent, 256)
	errs := make(chan error, 1)
	go func() {
		for {
			var ev tradeEvent
			if err := conn.ReadJSON(&ev); err != nil {
				errs <- err
				return
			}
			msgs <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errs:
			if acc != nil {
				s.bars <- acc.bar()
			}
			return err
		case <-flush.C:
			if acc != nil {
				s.bars <- acc.bar()
				acc = nil
			}
		case ev := <-msgs:
			price, err1 := strconv.ParseFloat(ev.Price, 64)
			qty, err2 := strconv.ParseFloat(ev.Quantity, 64)
			if err1 != nil || err2 != nil {
				continue
			}
			if acc == nil {
				acc = newBucket(ev.TradeTime, price)
			}
			acc.add(price, qty)
		}
	}
}

// bucket accumulates trades into one OHLCV bar.
type bucket struct {
	timestamp              string
	open, high, low, close float64
	volume                 float64
}

func newBucket(tradeTimeMs int64, price float64) *bucket {
	return &bucket{
		timestamp: strconv.FormatInt(tradeTimeMs, 10),
		open:      price, high: price, low: price, close: price,
	}
}

func (b *bucket) add(price, qty float64) {
	if price > b.high {
		b.high = price
	}
	if price < b.low {
		b.low = price
	}
	b.close = price
	b.volume += qty
}

func (b *bucket) bar() types.Bar {
	return types.Bar{
		Timestamp: b.timestamp,
		Open:      b.open,
		High:      b.high,
		Low:       b.low,
		Close:     b.close,
		Volume:    b.volume,
	}
}
