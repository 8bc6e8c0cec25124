// Package engine runs one cooperative iteration of the display loop: sample
// the button, drain feed events through the state machine and the stats
// pipeline, then send heartbeats and reconnects.
//
// An Engine is owned by a single goroutine. It never blocks: the transport
// dials in the background and Poll returns queued events only.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sweeney/langlights/internal/conn"
	"github.com/sweeney/langlights/internal/display"
	"github.com/sweeney/langlights/internal/gpio"
	"github.com/sweeney/langlights/internal/led"
	"github.com/sweeney/langlights/internal/mqtt"
	"github.com/sweeney/langlights/internal/render"
	"github.com/sweeney/langlights/internal/stats"
	"github.com/sweeney/langlights/internal/status"
	"github.com/sweeney/langlights/internal/transport"
)

// ErrSleep is returned by Step once the machine gives up reconnecting.
var ErrSleep = errors.New("engine: too many disconnects, sleeping")

// Screen lines shown by the engine.
const (
	WelcomeLine  = "Welcome!"
	SleepingLine = "Sleeping..."
)

// Config holds fixed engine parameters.
type Config struct {
	Server        string // shown on connect
	Port          int
	Capacity      int
	MaxBrightness uint8
	Hues          stats.HueTable
	Session       string
}

// Deps are the engine's collaborators. Tracker may be nil.
type Deps struct {
	Machine   *conn.Machine
	Transport transport.Transport
	Button    gpio.Button
	Strip     led.Strip
	Log       *display.Log
	Publisher mqtt.Publisher
	Tracker   *status.Tracker
}

// Engine wires the pipeline to its collaborators.
type Engine struct {
	cfg Config
	Deps

	last    stats.AggregationResult
	hasLast bool
}

// New creates an Engine. Zero Capacity and MaxBrightness take defaults.
func New(cfg Config, deps Deps) *Engine {
	if cfg.Capacity <= 0 {
		cfg.Capacity = stats.DefaultCapacity
	}
	if cfg.MaxBrightness == 0 {
		cfg.MaxBrightness = 255
	}
	if cfg.Hues.Hues == nil {
		cfg.Hues = stats.DefaultHues()
	}
	if deps.Button == nil {
		deps.Button = gpio.NoButton{}
	}
	if deps.Publisher == nil {
		deps.Publisher = mqtt.NopPublisher{}
	}
	return &Engine{cfg: cfg, Deps: deps}
}

// Start blanks the strip, greets on the screen and announces startup.
func (e *Engine) Start(ctx context.Context, now time.Time) {
	e.blank()
	e.appendLine(WelcomeLine)
	e.syncTracker()
	e.publishSystem(now, "STARTUP", "", true)
}

// Wake leaves the sleep state. The next Step dials again.
func (e *Engine) Wake(now time.Time) {
	e.Machine.Wake()
	e.hasLast = false
	e.blank()
	e.appendLine(WelcomeLine)
	e.syncTracker()
	e.publishSystem(now, "WAKE", "", true)
}

// Shutdown announces the shutdown with reason and closes the transport.
func (e *Engine) Shutdown(now time.Time, reason string) {
	e.syncTracker()
	e.publishSystem(now, "SHUTDOWN", reason, true)
	e.Stop()
}

func (e *Engine) blank() {
	if err := render.Commit(e.Strip, nil); err != nil {
		log.Printf("engine: blank strip: %v", err)
	}
}

// Step runs one iteration. It returns ErrSleep when the machine has entered
// StateSleeping; the caller decides how long to stay dark.
func (e *Engine) Step(ctx context.Context, now time.Time) error {
	e.sampleButton(ctx, now)

	for {
		ev, ok := e.Transport.Poll()
		if !ok {
			break
		}
		if err := e.handleEvent(ctx, now, ev); err != nil {
			return err
		}
	}

	if err := e.apply(ctx, now, e.Machine.Tick(now)); err != nil {
		return err
	}
	e.syncTracker()
	return nil
}

// Stop closes the transport. It is safe to call after a sleep.
func (e *Engine) Stop() {
	if err := e.Transport.Close(); err != nil {
		log.Printf("engine: close transport: %v", err)
	}
}

func (e *Engine) sampleButton(ctx context.Context, now time.Time) {
	pressed, err := e.Button.Pressed()
	if err != nil {
		log.Printf("engine: button read error: %v", err)
		return
	}
	if !pressed {
		return
	}
	accepted, actions := e.Machine.Press(now)
	if !accepted {
		return
	}
	log.Printf("engine: brightness level %d (%d)", e.Machine.Level(), e.options().Brightness)
	if e.hasLast {
		e.show(now, e.last)
	}
	// Press never yields ActionSleep.
	_ = e.apply(ctx, now, actions)
}

func (e *Engine) handleEvent(ctx context.Context, now time.Time, ev transport.Event) error {
	switch ev.Type {
	case transport.EventConnected:
		actions := e.Machine.Connected(now)
		if actions == nil {
			return nil
		}
		log.Printf("engine: connected to %s:%d", e.cfg.Server, e.cfg.Port)
		e.appendLine(fmt.Sprintf("ws:%s:%d", e.cfg.Server, e.cfg.Port))
		e.publishSystem(now, "CONNECTED", "", false)
		return e.apply(ctx, now, actions)

	case transport.EventDisconnected:
		before := e.Machine.State()
		actions := e.Machine.Disconnected(now)
		if before != e.Machine.State() {
			log.Printf("engine: disconnected (count %d): %v", e.Machine.DisconnectCount(), ev.Err)
		}
		return e.apply(ctx, now, actions)

	case transport.EventText:
		if !e.Machine.AcceptsText() {
			return nil
		}
		if err := e.HandleText(now, ev.Text); err != nil {
			log.Printf("engine: %v", err)
			if e.Tracker != nil {
				e.Tracker.AddDecodeError()
			}
		}
	}
	return nil
}

// HandleText runs one inbound payload through the pipeline. Payloads without
// a JSON array and events other than statistics are ignored. A decode error
// is returned and the previous frame stays on the strip.
func (e *Engine) HandleText(now time.Time, payload string) error {
	text, ok := stats.Unframe(payload)
	if !ok {
		return nil
	}
	msg, err := stats.Decode(text, e.cfg.Hues)
	if err != nil {
		return err
	}
	if !msg.IsStatistics() {
		return nil
	}

	res := stats.Allocate(msg.Records, msg.TotalRawCount, e.cfg.Capacity)
	if res.Truncated() {
		log.Printf("engine: allocation %d exceeds capacity %d, clipped", res.AllocatedSum(), res.Capacity)
	}
	e.last = res
	e.hasLast = true

	e.show(now, res)
	e.appendLine(render.Summary(res))
	return nil
}

// show renders res at the current brightness and mirrors it.
func (e *Engine) show(now time.Time, res stats.AggregationResult) {
	opts := e.options()
	frame := render.Frame(res, opts)
	if err := render.Commit(e.Strip, frame); err != nil {
		log.Printf("engine: %v", err)
	}
	if e.Tracker != nil {
		e.Tracker.SetFrame(now, res, frame)
	}
	err := e.Publisher.PublishFrame(mqtt.FrameEvent{
		Timestamp:  now,
		Result:     res,
		Brightness: opts.Brightness,
	})
	if err != nil {
		log.Printf("engine: publish frame: %v", err)
	}
}

func (e *Engine) options() render.Options {
	steps := e.Machine.Steps()
	return render.Options{
		Brightness: render.Brightness(e.Machine.Level(), steps, e.cfg.MaxBrightness),
		Boost:      render.Boost(steps, e.cfg.MaxBrightness),
	}
}

func (e *Engine) apply(ctx context.Context, now time.Time, actions []conn.Action) error {
	for _, a := range actions {
		switch a.Type {
		case conn.ActionDial:
			e.Transport.Dial(ctx)
		case conn.ActionSend:
			if err := e.Transport.Send(a.Frame); err != nil {
				log.Printf("engine: send %q: %v", a.Frame, err)
			}
		case conn.ActionSleep:
			return e.sleep(now)
		}
	}
	return nil
}

func (e *Engine) sleep(now time.Time) error {
	log.Printf("engine: %d disconnects, going to sleep", e.Machine.DisconnectCount())
	e.blank()
	e.appendLine(SleepingLine)
	e.syncTracker()
	e.publishSystem(now, "SLEEP", fmt.Sprintf("disconnects=%d", e.Machine.DisconnectCount()), true)
	e.Stop()
	return ErrSleep
}

func (e *Engine) appendLine(line string) {
	if err := e.Log.Append(line); err != nil {
		log.Printf("engine: %v", err)
	}
	if e.Tracker != nil {
		e.Tracker.SetLines(e.Log.Lines())
	}
}

func (e *Engine) syncTracker() {
	if e.Tracker == nil {
		return
	}
	e.Tracker.SetConnection(e.Machine.State(), e.Machine.DisconnectCount())
	e.Tracker.SetBrightness(e.Machine.Level(), e.options().Brightness)
	if cs, ok := e.Publisher.(mqtt.ConnectionStatus); ok {
		e.Tracker.SetMQTTConnected(cs.IsConnected())
	}
}

func (e *Engine) publishSystem(now time.Time, event, reason string, retained bool) {
	se := mqtt.SystemEvent{
		Timestamp: now,
		Event:     event,
		Reason:    reason,
		Session:   e.cfg.Session,
		Retained:  retained,
	}
	if e.Tracker != nil {
		se.RawPayload = status.FormatStatusEvent(e.Tracker.Snapshot(), event, reason)
	}
	if err := e.Publisher.PublishSystem(se); err != nil {
		log.Printf("engine: publish %s event: %v", event, err)
	}
}
