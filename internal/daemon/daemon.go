// Package daemon owns the cooperative single-threaded engine loop
// described in spec.md §5: one capture goroutine per discovered
// device feeds a bounded channel, and a single engine goroutine is the
// sole owner of all DeviceState mutation, matching the reference
// daemon's one-hook-thread/one-processing-thread split.
package daemon

import (
	"context"
	"sync"
	"time"

	"github.com/keyrxd/keyrx/internal/devicestate"
	"github.com/keyrxd/keyrx/internal/engine"
	"github.com/keyrxd/keyrx/internal/logger"
	"github.com/keyrxd/keyrx/internal/metrics"
	"github.com/keyrxd/keyrx/internal/platform"
	"github.com/keyrxd/keyrx/pkg/keycode"
	"github.com/keyrxd/keyrx/pkg/profile"
)

// capturedEvent pairs a physical event with the device it came from, and
// the logging context scoped to that device, so the single engine
// goroutine can apply per-device mapping rules and attach device_id to
// any log line without re-deriving it.
type capturedEvent struct {
	deviceID string
	event    keycode.KeyEvent
	ctx      context.Context
}

// Config controls the daemon's queue sizing and per-device state
// capacities.
type Config struct {
	QueueCapacity         int
	PressedKeyCapacity    int
	PressedOutputCapacity int
}

// DefaultConfig returns the reference capacities from spec.md §9.
func DefaultConfig() Config {
	return Config{
		QueueCapacity:         256,
		PressedKeyCapacity:    devicestate.DefaultPressedKeyCapacity,
		PressedOutputCapacity: devicestate.DefaultPressedOutputCapacity,
	}
}

// Daemon runs the capture → process → inject loop against one
// Platform and one compiled ConfigRoot.
type Daemon struct {
	cfg       Config
	plat      platform.Platform
	processor *engine.Processor
	metrics   *metrics.Metrics
	blocks    *BlockSet

	states map[string]*devicestate.State
}

// New builds a Daemon. m may be nil (metrics become no-ops).
func New(cfg Config, plat platform.Platform, config profile.ConfigRoot, m *metrics.Metrics) *Daemon {
	processor := engine.NewProcessor(config)
	processor.Metrics = m

	blocks := NewBlockSet()
	for _, dev := range config.Devices {
		for _, mapping := range dev.Mappings {
			switch mapping.Kind {
			case profile.KeyMappingBase:
				blocks.Block(uint32(mapping.Base.From))
			case profile.KeyMappingConditional:
				for _, base := range mapping.Mappings {
					blocks.Block(uint32(base.From))
				}
			}
		}
	}
	if ba, ok := plat.(platform.BlockAware); ok {
		ba.SetBlocked(func(kc keycode.KeyCode) bool { return blocks.IsBlocked(uint32(kc)) })
	}

	return &Daemon{
		cfg:       cfg,
		plat:      plat,
		processor: processor,
		metrics:   m,
		blocks:    blocks,
		states:    make(map[string]*devicestate.State),
	}
}

// Run discovers devices, grabs them, and processes events until ctx is
// cancelled or every device's input stream has ended (EndOfStream). It
// returns ctx.Err(), so a run whose streams all end before cancellation
// returns nil. On return, every currently-pressed key across every
// device has had a synthetic release emitted (spec.md §5's shutdown
// contract).
func (d *Daemon) Run(ctx context.Context) error {
	devices, err := d.plat.Discover()
	if err != nil {
		return err
	}
	output, err := d.plat.Output()
	if err != nil {
		return err
	}

	queue := make(chan capturedEvent, d.cfg.QueueCapacity)
	var wg sync.WaitGroup

	for _, dev := range devices {
		devCtx := logger.WithContext(ctx, logger.NewLogContext(dev.ID()))
		if err := dev.Grab(); err != nil {
			logger.WarnCtx(devCtx, "failed to grab input device", logger.Err(err))
		}
		d.states[dev.ID()] = devicestate.New(d.cfg.PressedKeyCapacity, d.cfg.PressedOutputCapacity)

		wg.Add(1)
		go d.captureLoop(devCtx, dev, queue, &wg)
	}

	// queue is only closed after every capture goroutine has returned,
	// never directly on ctx.Done(): closing it earlier would race a
	// still-running captureLoop's send against this close and could
	// panic on a send to a closed channel.
	go func() {
		wg.Wait()
		close(queue)
	}()

	for captured := range queue {
		d.handleEvent(captured, output)
	}

	d.shutdownReleaseAll(output)
	for _, dev := range devices {
		_ = dev.Release()
	}
	return ctx.Err()
}

func (d *Daemon) captureLoop(ctx context.Context, dev platform.InputDevice, queue chan<- capturedEvent, wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		ev, err := dev.NextEvent()
		if err != nil {
			logger.DebugCtx(ctx, "input device stream ended", logger.Err(err))
			return
		}
		select {
		case queue <- capturedEvent{deviceID: dev.ID(), event: ev, ctx: ctx}:
		case <-ctx.Done():
			return
		}
	}
}

func (d *Daemon) handleEvent(captured capturedEvent, output platform.OutputDevice) {
	state, ok := d.states[captured.deviceID]
	if !ok {
		state = devicestate.New(d.cfg.PressedKeyCapacity, d.cfg.PressedOutputCapacity)
		d.states[captured.deviceID] = state
	}

	deviceID := captured.deviceID
	injectCtx := logger.WithContext(captured.ctx, logger.NewLogContext(deviceID).WithOperation("inject"))

	start := time.Now()
	outputs := d.processor.Process(state, captured.event, &deviceID)
	d.metrics.ObserveProcessDuration(time.Since(start))
	d.metrics.ObserveEventProcessed()

	for _, out := range outputs {
		if err := output.InjectEvent(out); err != nil {
			logger.WarnCtx(injectCtx, "event injection failed", logger.Key(out.Key.String()), logger.Err(err))
			d.metrics.ObserveInjectionFailure()
			continue
		}
	}
}

// shutdownReleaseAll synthesizes a release for every key still pressed
// in every device's state, in the reverse order it was pressed
// (spec.md §5 graceful-shutdown contract), then injects them.
func (d *Daemon) shutdownReleaseAll(output platform.OutputDevice) {
	for deviceID, state := range d.states {
		shutdownCtx := logger.WithContext(context.Background(), logger.NewLogContext(deviceID).WithOperation("shutdown_release"))
		state.ClearAllPressed(func(from keycode.KeyCode, outs []keycode.KeyCode) {
			for _, out := range outs {
				if err := output.InjectEvent(keycode.NewRelease(out, 0)); err != nil {
					logger.WarnCtx(shutdownCtx, "shutdown release injection failed", logger.Key(out.String()), logger.Err(err))
				}
			}
		})
	}
}
