package engine

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"todotimer/pkg/utils"
)

// Default polling periods
const (
	DefaultTickInterval   = time.Second
	DefaultExpiryInterval = time.Minute
)

// EventKind tells which periodic pass produced an Event
type EventKind int

const (
	TickEvent EventKind = iota
	ExpiryEvent
)

func (k EventKind) String() string {
	if k == ExpiryEvent {
		return "expiry"
	}
	return "tick"
}

// Event is delivered after every periodic pass. Changed is false for a pure
// heartbeat.
type Event struct {
	Kind    EventKind
	Changed bool
	At      time.Time
}

// Driver runs the timer tick and the expiration pass against a Store
type Driver struct {
	Store          *Store
	TickInterval   time.Duration
	ExpiryInterval time.Duration

	// OnEvent, if set, is called from the driver goroutine after each pass
	OnEvent func(Event)

	log logrus.FieldLogger
}

// NewDriver creates a driver with the default periods
func NewDriver(store *Store, onEvent func(Event)) *Driver {
	return &Driver{
		Store:          store,
		TickInterval:   DefaultTickInterval,
		ExpiryInterval: DefaultExpiryInterval,
		OnEvent:        onEvent,
		log:            utils.Logger().WithField("component", "driver"),
	}
}

// Run performs one expiration pass, then ticks until ctx is done
func (d *Driver) Run(ctx context.Context) error {
	tickEvery := d.TickInterval
	if tickEvery <= 0 {
		tickEvery = DefaultTickInterval
	}
	expiryEvery := d.ExpiryInterval
	if expiryEvery <= 0 {
		expiryEvery = DefaultExpiryInterval
	}
	if d.log == nil {
		d.log = utils.Logger().WithField("component", "driver")
	}

	d.emit(ExpiryEvent, d.Store.RefreshExpired())

	tick := time.NewTicker(tickEvery)
	defer tick.Stop()
	expiry := time.NewTicker(expiryEvery)
	defer expiry.Stop()

	d.log.WithFields(logrus.Fields{
		"tick":   tickEvery,
		"expiry": expiryEvery,
	}).Debug("driver started")

	for {
		select {
		case <-ctx.Done():
			d.log.Debug("driver stopped")
			return ctx.Err()
		case <-tick.C:
			d.emit(TickEvent, d.Store.Tick())
		case <-expiry.C:
			d.emit(ExpiryEvent, d.Store.RefreshExpired())
		}
	}
}

func (d *Driver) emit(kind EventKind, changed bool) {
	if changed {
		d.log.WithField("kind", kind.String()).Debug("tasks changed")
	}
	if d.OnEvent != nil {
		d.OnEvent(Event{Kind: kind, Changed: changed, At: d.Store.Now()})
	}
}
