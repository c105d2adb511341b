package platform

import (
	"sync"

	"github.com/keyrxd/keyrx/pkg/keycode"
)

// MockInput simulates an input device by replaying a preloaded queue of
// events in FIFO order. Once exhausted, NextEvent returns EndOfStream.
type MockInput struct {
	mu      sync.Mutex
	id      string
	events  []keycode.KeyEvent
	pos     int
	grabbed bool
}

// NewMockInput builds a MockInput that will replay events in order.
func NewMockInput(id string, events []keycode.KeyEvent) *MockInput {
	return &MockInput{id: id, events: events}
}

func (m *MockInput) NextEvent() (keycode.KeyEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pos >= len(m.events) {
		return keycode.KeyEvent{}, newDeviceError(EndOfStream, "")
	}
	ev := m.events[m.pos]
	m.pos++
	return ev, nil
}

func (m *MockInput) Grab() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.grabbed = true
	return nil
}

func (m *MockInput) Release() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.grabbed = false
	return nil
}

// IsGrabbed reports whether Grab has been called without a matching
// Release, for test assertions.
func (m *MockInput) IsGrabbed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.grabbed
}

func (m *MockInput) ID() string { return m.id }

// MockOutput captures injected events for later verification instead of
// replaying them into a real OS input stream.
type MockOutput struct {
	mu       sync.Mutex
	events   []keycode.KeyEvent
	failMode bool
}

// NewMockOutput builds an empty MockOutput.
func NewMockOutput() *MockOutput {
	return &MockOutput{}
}

func (m *MockOutput) InjectEvent(ev keycode.KeyEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failMode {
		return newDeviceError(InjectionFailed, "mock failure mode enabled")
	}
	m.events = append(m.events, ev)
	return nil
}

// Events returns a snapshot of all events captured so far, in
// injection order.
func (m *MockOutput) Events() []keycode.KeyEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]keycode.KeyEvent, len(m.events))
	copy(out, m.events)
	return out
}

// SetFailMode toggles whether InjectEvent fails every call.
func (m *MockOutput) SetFailMode(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failMode = enabled
}

// MockPlatform wires a fixed set of MockInputs to one MockOutput,
// letting daemon tests exercise the full discover/output lifecycle
// without touching the OS.
type MockPlatform struct {
	Inputs []*MockInput
	Out    *MockOutput
}

// NewMockPlatform builds a MockPlatform over the given inputs, creating
// a fresh MockOutput.
func NewMockPlatform(inputs ...*MockInput) *MockPlatform {
	return &MockPlatform{Inputs: inputs, Out: NewMockOutput()}
}

func (p *MockPlatform) Discover() ([]InputDevice, error) {
	devices := make([]InputDevice, len(p.Inputs))
	for i, in := range p.Inputs {
		devices[i] = in
	}
	return devices, nil
}

func (p *MockPlatform) Output() (OutputDevice, error) {
	return p.Out, nil
}

func (p *MockPlatform) Name() string { return "mock" }
