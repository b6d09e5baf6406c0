// Package telemetry broadcasts an Engine's world state to connected
// websocket clients after every step, without letting a slow or stalled
// client block the simulation goroutine. The core has no rendering or
// networking of its own; this package lives outside it entirely and only
// ever reads an Engine through its public event hooks.
package telemetry

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/jinzhu/copier"

	"github.com/brineforge/rigid2d"
)

// BodySnapshot is a plain-data copy of one body's state at a single instant.
// It is deep-copied out of the live *rigid2d.Body via copier so that a
// broadcast goroutine can marshal and send it long after the engine has
// moved on to its next step, without racing the single-threaded core —
// the engine itself assumes single-threaded, synchronous use, and
// telemetry must not violate that from the outside.
type BodySnapshot struct {
	Label           string
	Position        rigid2d.Vector
	Angle           float64
	Velocity        rigid2d.Vector
	AngularVelocity float64
	IsSleeping      bool
	IsStatic        bool
}

// Frame is one broadcast unit: every body in the world at Timestamp.
type Frame struct {
	Timestamp float64        `json:"timestamp"`
	Bodies    []BodySnapshot `json:"bodies"`
}

// Recorder subscribes to an Engine's afterUpdate event, captures a Frame
// snapshot each step, and fans it out to every connected websocket client.
// A client that falls behind is dropped rather than allowed to backpressure
// the simulation.
type Recorder struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]chan Frame

	logger rigid2d.Logger
}

// NewRecorder constructs a Recorder. A nil logger falls back to log.Default,
// matching the core's own Logger convention (rigid2d.Logger — see errors.go).
func NewRecorder(logger rigid2d.Logger) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]chan Frame),
		logger:  logger,
	}
}

// Attach wires the Recorder to engine's afterUpdate event. Call once per
// Engine; safe to call before or after the engine has any bodies.
func (rec *Recorder) Attach(engine *rigid2d.Engine) {
	engine.On(rigid2d.EventAfterUpdate, func(ev rigid2d.Event) {
		rec.capture(engine)
	})
}

func (rec *Recorder) capture(engine *rigid2d.Engine) {
	bodies := engine.World.AllBodies()
	frame := Frame{
		Timestamp: engine.Timing.Timestamp,
		Bodies:    make([]BodySnapshot, len(bodies)),
	}
	for i, body := range bodies {
		if err := copier.Copy(&frame.Bodies[i], body); err != nil {
			rec.logger.Printf("telemetry: snapshot copy failed for body %q: %v", body.Label, err)
			continue
		}
	}
	rec.broadcast(frame)
}

func (rec *Recorder) broadcast(frame Frame) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	for conn, queue := range rec.clients {
		select {
		case queue <- frame:
		default:
			rec.logger.Printf("telemetry: dropping slow client %s", conn.RemoteAddr())
			conn.Close()
		}
	}
}

// ServeHTTP upgrades the connection to a websocket and streams every
// subsequent Frame as JSON until the client disconnects.
func (rec *Recorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := rec.upgrader.Upgrade(w, r, nil)
	if err != nil {
		rec.logger.Printf("telemetry: upgrade failed: %v", err)
		return
	}

	queue := make(chan Frame, 8)
	rec.mu.Lock()
	rec.clients[conn] = queue
	rec.mu.Unlock()

	defer func() {
		rec.mu.Lock()
		delete(rec.clients, conn)
		rec.mu.Unlock()
		close(queue)
		conn.Close()
	}()

	// Reading is what surfaces a client's close frame or a dead connection.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case frame := <-queue:
			data, err := json.Marshal(frame)
			if err != nil {
				rec.logger.Printf("telemetry: marshal failed: %v", err)
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}
}

// ClientCount reports how many websocket clients are currently attached.
func (rec *Recorder) ClientCount() int {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return len(rec.clients)
}
