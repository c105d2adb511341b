// Package engine implements the event processor, the hot path that
// turns one physical KeyEvent into zero or more output KeyEvents per
// spec.md §4.4. It is a pure function of (input, DeviceState, device_id,
// ConfigRoot) with the single exception that it mutates DeviceState.
package engine

import (
	"github.com/keyrxd/keyrx/internal/devicestate"
	"github.com/keyrxd/keyrx/internal/metrics"
	"github.com/keyrxd/keyrx/pkg/keycode"
	"github.com/keyrxd/keyrx/pkg/profile"
)

// Processor owns no state of its own beyond a reference to the compiled
// config; DeviceState is passed in explicitly by the daemon loop, which
// is the single owner of both (spec.md §5). Metrics is optional (nil is
// fine, *metrics.Metrics is itself nil-safe) and is exported so callers
// can wire it in after construction, the same way Config is set.
type Processor struct {
	Config  profile.ConfigRoot
	Metrics *metrics.Metrics
}

// NewProcessor builds a Processor over a compiled, already-loaded config.
func NewProcessor(cfg profile.ConfigRoot) *Processor {
	return &Processor{Config: cfg}
}

var physicalModifierOrder = []struct {
	enabled func(m profile.BaseKeyMapping) bool
	key     keycode.KeyCode
}{
	{func(m profile.BaseKeyMapping) bool { return m.ModShift }, keycode.LShift},
	{func(m profile.BaseKeyMapping) bool { return m.ModCtrl }, keycode.LCtrl},
	{func(m profile.BaseKeyMapping) bool { return m.ModAlt }, keycode.LAlt},
	{func(m profile.BaseKeyMapping) bool { return m.ModWin }, keycode.LMeta},
}

// Process implements the algorithm in spec.md §4.4. deviceID is nil
// when the originating device is unknown.
func (p *Processor) Process(state *devicestate.State, input keycode.KeyEvent, deviceID *string) []keycode.KeyEvent {
	now := input.TimestampUS

	// 1 & 2: clock update + tap-hold precheck. A hold becoming active is
	// a state-only change; it never produces output.
	for _, tr := range state.TapHold.Tick(now) {
		if tr.Outcome == devicestate.OutcomeHoldActivated {
			state.SetModifier(tr.HoldModifier)
			p.Metrics.ObserveTapHoldResolution("hold")
		}
	}

	if input.Kind == keycode.Press {
		// "Rolling": a press of any other physical key while a tap-hold
		// key is Pending resolves that key as a hold first.
		for _, pending := range state.TapHold.PendingFrom() {
			if pending == input.Key {
				continue
			}
			if modID, ok := state.TapHold.RollingPress(pending); ok {
				state.SetModifier(modID)
				p.Metrics.ObserveTapHoldResolution("rolling")
			}
		}
	}

	if input.Kind == keycode.Release {
		return p.processRelease(state, input, deviceID, now)
	}
	return p.processPress(state, input, deviceID, now)
}

func (p *Processor) processRelease(state *devicestate.State, input keycode.KeyEvent, deviceID *string, now uint64) []keycode.KeyEvent {
	// TapHold keys are never recorded in pressed_keys (no output at
	// press time), so they resolve through the FSM directly.
	if state.TapHold.IsTracked(input.Key) {
		tr, _ := state.TapHold.ResolveRelease(input.Key, now)
		switch tr.Outcome {
		case devicestate.OutcomeTapFired:
			p.Metrics.ObserveTapHoldResolution("tap")
			// Raw, non-remapped output: never fed back into the engine.
			return []keycode.KeyEvent{
				keycode.NewPress(tr.Tap, now),
				keycode.NewRelease(tr.Tap, now),
			}
		case devicestate.OutcomeHoldReleased:
			state.ClearModifier(tr.HoldModifier)
		}
		return nil
	}

	outputs, tracked := state.TakeRelease(input.Key)
	if !tracked {
		// Untracked release: pass through as-is, never an error.
		return []keycode.KeyEvent{keycode.NewRelease(input.Key, now)}
	}

	var out []keycode.KeyEvent
	for i := len(outputs) - 1; i >= 0; i-- {
		out = append(out, keycode.NewRelease(outputs[i], now))
	}

	// Modifier/Lock base mappings record an empty outputs slice at press
	// time (step 5); their release-side effect (clear bit / no-op) still
	// needs to run, looked up by re-matching `from` against the config.
	if m, ok := p.lookupBaseMapping(state, deviceID, input.Key); ok {
		switch m.Kind {
		case profile.MappingModifier:
			state.ClearModifier(m.StateID)
		case profile.MappingLock:
			// release is ignored for locks.
		}
	}
	return out
}

func (p *Processor) processPress(state *devicestate.State, input keycode.KeyEvent, deviceID *string, now uint64) []keycode.KeyEvent {
	m, ok := p.lookupBaseMapping(state, deviceID, input.Key)
	if !ok {
		// Pass-through: no mapping claims it; never recorded.
		return []keycode.KeyEvent{keycode.NewPress(input.Key, now)}
	}

	switch m.Kind {
	case profile.MappingSimple:
		outputs := []keycode.KeyCode{m.To}
		if !state.RecordPress(input.Key, outputs) {
			return []keycode.KeyEvent{keycode.NewPress(input.Key, now)}
		}
		return []keycode.KeyEvent{keycode.NewPress(m.To, now)}

	case profile.MappingModifier:
		if !state.RecordPress(input.Key, nil) {
			return []keycode.KeyEvent{keycode.NewPress(input.Key, now)}
		}
		state.SetModifier(m.StateID)
		return nil

	case profile.MappingLock:
		if !state.RecordPress(input.Key, nil) {
			return []keycode.KeyEvent{keycode.NewPress(input.Key, now)}
		}
		state.ToggleLock(m.StateID)
		return nil

	case profile.MappingTapHold:
		thresholdUS := uint64(m.ThresholdMS) * 1000
		state.TapHold.Begin(m.From, m.Tap, m.HoldModifier, thresholdUS, now)
		return nil

	case profile.MappingModifiedOutput:
		var outputs []keycode.KeyCode
		for _, pm := range physicalModifierOrder {
			if pm.enabled(m) {
				outputs = append(outputs, pm.key)
			}
		}
		outputs = append(outputs, m.ModOutTo)
		if !state.RecordPress(input.Key, outputs) {
			return []keycode.KeyEvent{keycode.NewPress(input.Key, now)}
		}
		out := make([]keycode.KeyEvent, 0, len(outputs))
		for _, o := range outputs {
			out = append(out, keycode.NewPress(o, now))
		}
		return out

	default:
		return []keycode.KeyEvent{keycode.NewPress(input.Key, now)}
	}
}

// lookupBaseMapping implements §4.4 step 4 + step 6: filter DeviceConfigs
// by device pattern, then scan mappings in order, descending into each
// true Conditional and skipping false ones, for the first BaseKeyMapping
// whose From matches key. The first matching BaseKeyMapping across the whole scan
// wins.
func (p *Processor) lookupBaseMapping(state *devicestate.State, deviceID *string, key keycode.KeyCode) (profile.BaseKeyMapping, bool) {
	for _, dev := range p.Config.Devices {
		if !matchesDeviceConfig(dev.Identifier.Pattern, deviceID) {
			continue
		}
		for _, mapping := range dev.Mappings {
			switch mapping.Kind {
			case profile.KeyMappingBase:
				if mapping.Base.From == key {
					return mapping.Base, true
				}
			case profile.KeyMappingConditional:
				if !devicestate.Evaluate(mapping.Condition, state, deviceID) {
					continue
				}
				for _, base := range mapping.Mappings {
					if base.From == key {
						return base, true
					}
				}
			}
		}
	}
	return profile.BaseKeyMapping{}, false
}

// matchesDeviceConfig implements §4.4 step 6's device-selection rule,
// distinct from the condition evaluator's DeviceMatches: an unknown
// (nil) device id matches every DeviceConfig for mapping-lookup
// purposes, not only the pattern "*".
func matchesDeviceConfig(pattern string, deviceID *string) bool {
	if deviceID == nil {
		return true
	}
	return profile.MatchDevicePattern(pattern, *deviceID)
}
