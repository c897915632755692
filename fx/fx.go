// Package fx defines abstract presentation effect requests. The core emits
// these fire-and-forget; a frontend renders them however it likes. A missing
// sink drops requests without affecting simulation.
package fx

// Kind identifies the effect category.
type Kind int

const (
	ScreenShake Kind = iota
	DamageNumber
	Flash
	Glow
)

// Request is one abstract effect.
type Request struct {
	Kind      Kind
	X, Y      float64
	Magnitude float64
	Duration  int // ticks
}

// Sink consumes effect requests. No acknowledgement is expected.
type Sink interface {
	Emit(Request)
}

// Emit sends a request to sink if one is present.
func Emit(sink Sink, r Request) {
	if sink == nil {
		return
	}
	sink.Emit(r)
}

// Recorder is a Sink that captures requests, for tests.
type Recorder struct {
	Requests []Request
}

func (r *Recorder) Emit(req Request) {
	r.Requests = append(r.Requests, req)
}
