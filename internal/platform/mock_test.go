package platform

import (
	"testing"

	"github.com/keyrxd/keyrx/pkg/keycode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockInputEventSequence(t *testing.T) {
	events := []keycode.KeyEvent{
		keycode.NewPress(keycode.A, 0),
		keycode.NewRelease(keycode.A, 1),
		keycode.NewPress(keycode.B, 2),
	}
	input := NewMockInput("kbd0", events)

	for _, want := range events {
		got, err := input.NextEvent()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := input.NextEvent()
	var de *DeviceError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, EndOfStream, de.Kind)
}

func TestMockInputGrabRelease(t *testing.T) {
	input := NewMockInput("kbd0", nil)
	assert.False(t, input.IsGrabbed())

	require.NoError(t, input.Grab())
	assert.True(t, input.IsGrabbed())

	require.NoError(t, input.Release())
	assert.False(t, input.IsGrabbed())
}

func TestMockInputEndOfStreamRepeats(t *testing.T) {
	input := NewMockInput("kbd0", nil)
	_, err := input.NextEvent()
	require.Error(t, err)
	_, err = input.NextEvent()
	require.Error(t, err)
}

func TestMockOutputEventCapture(t *testing.T) {
	output := NewMockOutput()
	assert.Empty(t, output.Events())

	require.NoError(t, output.InjectEvent(keycode.NewPress(keycode.A, 0)))
	require.NoError(t, output.InjectEvent(keycode.NewRelease(keycode.A, 1)))
	require.NoError(t, output.InjectEvent(keycode.NewPress(keycode.B, 2)))

	events := output.Events()
	require.Len(t, events, 3)
	assert.Equal(t, keycode.NewPress(keycode.A, 0), events[0])
	assert.Equal(t, keycode.NewRelease(keycode.A, 1), events[1])
	assert.Equal(t, keycode.NewPress(keycode.B, 2), events[2])
}

func TestMockOutputFailMode(t *testing.T) {
	output := NewMockOutput()

	require.NoError(t, output.InjectEvent(keycode.NewPress(keycode.A, 0)))
	assert.Len(t, output.Events(), 1)

	output.SetFailMode(true)
	err := output.InjectEvent(keycode.NewPress(keycode.B, 1))
	var de *DeviceError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, InjectionFailed, de.Kind)
	assert.Len(t, output.Events(), 1, "failed injection must not be captured")

	output.SetFailMode(false)
	require.NoError(t, output.InjectEvent(keycode.NewPress(keycode.C, 2)))
	assert.Len(t, output.Events(), 2)
}

func TestMockPlatformDiscoverAndOutput(t *testing.T) {
	in1 := NewMockInput("kbd0", []keycode.KeyEvent{keycode.NewPress(keycode.A, 0)})
	in2 := NewMockInput("kbd1", nil)
	p := NewMockPlatform(in1, in2)

	devices, err := p.Discover()
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, "kbd0", devices[0].ID())
	assert.Equal(t, "kbd1", devices[1].ID())

	out, err := p.Output()
	require.NoError(t, err)
	require.NoError(t, out.InjectEvent(keycode.NewPress(keycode.Z, 0)))
	assert.Equal(t, "mock", p.Name())
}
