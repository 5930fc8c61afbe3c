// Package indicator implements C2: a family of online, incremental
// technical indicators (SMA, EMA, RSI, realized volatility, VWAP), each
// O(1) amortized per update.
package indicator

// Engine owns a set of keyed indicator instances and fans a single
// add_price(price, volume) call out to every instance that has been
// registered. Registration (EnsureSMA/EnsureEMA/EnsureRSI/EnsureVWAP) MUST
// happen before the first AddPrice call: the engine has no history-replay
// capability, so an indicator registered mid-stream only sees bars from
// that point forward.
type Engine struct {
	sma  map[int]*SMA
	ema  map[int]*EMA
	rsi  map[int]*RSI
	vwap map[int]*VWAP
	vol  *RealizedVol
}

// NewEngine returns an empty Engine. Realized volatility is always
// available (it has no caller-chosen window at construction time; queries
// pick the tail length).
func NewEngine() *Engine {
	return &Engine{
		sma:  make(map[int]*SMA),
		ema:  make(map[int]*EMA),
		rsi:  make(map[int]*RSI),
		vwap: make(map[int]*VWAP),
		vol:  NewRealizedVol(),
	}
}

// EnsureSMA registers (idempotently) an SMA over window.
func (e *Engine) EnsureSMA(window int) {
	if _, ok := e.sma[window]; !ok {
		e.sma[window] = NewSMA(window)
	}
}

// EnsureEMA registers (idempotently) an EMA over window.
func (e *Engine) EnsureEMA(window int) {
	if _, ok := e.ema[window]; !ok {
		e.ema[window] = NewEMA(window)
	}
}

// EnsureRSI registers (idempotently) an RSI over window.
func (e *Engine) EnsureRSI(window int) {
	if _, ok := e.rsi[window]; !ok {
		e.rsi[window] = NewRSI(window)
	}
}

// EnsureVWAP registers (idempotently) a VWAP over window.
func (e *Engine) EnsureVWAP(window int) {
	if _, ok := e.vwap[window]; !ok {
		e.vwap[window] = NewVWAP(window)
	}
}

// AddPrice must be called exactly once per bar, before any query for that
// bar. It fans the update out to every registered indicator.
func (e *Engine) AddPrice(price, volume float64) {
	for _, s := range e.sma {
		s.Update(price)
	}
	for _, s := range e.ema {
		s.Update(price)
	}
	for _, s := range e.rsi {
		s.Update(price)
	}
	for _, s := range e.vwap {
		s.Update(price, volume)
	}
	e.vol.Update(price)
}

// SMA returns the current value of the SMA registered at window, or 0 if
// it was never registered.
func (e *Engine) SMA(window int) float64 {
	if s, ok := e.sma[window]; ok {
		return s.Value()
	}
	return 0
}

// EMA returns the current value of the EMA registered at window, or 0 if
// it was never registered.
func (e *Engine) EMA(window int) float64 {
	if s, ok := e.ema[window]; ok {
		return s.Value()
	}
	return 0
}

// RSI returns the current value of the RSI registered at window, or the
// neutral 50 if it was never registered.
func (e *Engine) RSI(window int) float64 {
	if s, ok := e.rsi[window]; ok {
		return s.Value()
	}
	return 50.0
}

// VWAP returns the current value of the VWAP registered at window, or 0 if
// it was never registered.
func (e *Engine) VWAP(window int) float64 {
	if s, ok := e.vwap[window]; ok {
		return s.Value()
	}
	return 0
}

// RealizedVol returns the annualized realized volatility over the tail of
// up to window returns (capped at the engine's 20-sample storage).
func (e *Engine) RealizedVol(window int) float64 {
	return e.vol.Value(window)
}
