package codec

import (
	"bytes"
	"testing"

	"github.com/keyrxd/keyrx/pkg/keycode"
	"github.com/keyrxd/keyrx/pkg/profile"
)

func sampleConfig() profile.ConfigRoot {
	return profile.ConfigRoot{
		Version: profile.Version{Major: profile.SupportedMajor, Minor: 2, Patch: 3},
		Devices: []profile.DeviceConfig{
			{
				Identifier: profile.DeviceIdentifier{Pattern: "*"},
				Mappings: []profile.KeyMapping{
					profile.BaseMapping(profile.Simple(keycode.A, keycode.B)),
					profile.BaseMapping(profile.Modifier(keycode.Space, 0)),
					profile.BaseMapping(profile.Lock(keycode.ScrollLock, 1)),
					profile.BaseMapping(profile.TapHold(keycode.CapsLock, keycode.Escape, 2, 200)),
					profile.BaseMapping(profile.ModifiedOutput(keycode.Digit2, keycode.Digit7, true, false, false, false)),
					profile.ConditionalMapping(
						profile.AllActive(profile.ModifierActiveItem(0), profile.LockActiveItem(1)),
						profile.Simple(keycode.H, keycode.Left),
					),
				},
			},
		},
		Metadata: profile.Metadata{
			CompileTimestampUnix: 1234567,
			CompilerVersion:      "0.1.0",
			SourceHash:           [32]byte{1, 2, 3},
			BuildID:              [16]byte{9, 8, 7},
		},
	}
}

func TestSerializeLoadRoundTrip(t *testing.T) {
	cfg := sampleConfig()
	data := Serialize(cfg)
	got, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.Version != cfg.Version {
		t.Errorf("version mismatch: got %+v want %+v", got.Version, cfg.Version)
	}
	if len(got.Devices) != len(cfg.Devices) {
		t.Fatalf("device count mismatch: got %d want %d", len(got.Devices), len(cfg.Devices))
	}
	if got.Devices[0].Identifier.Pattern != cfg.Devices[0].Identifier.Pattern {
		t.Errorf("pattern mismatch")
	}
	if len(got.Devices[0].Mappings) != len(cfg.Devices[0].Mappings) {
		t.Fatalf("mapping count mismatch: got %d want %d", len(got.Devices[0].Mappings), len(cfg.Devices[0].Mappings))
	}
	if got.Metadata != cfg.Metadata {
		t.Errorf("metadata mismatch: got %+v want %+v", got.Metadata, cfg.Metadata)
	}
}

func TestSerializeDeterministic(t *testing.T) {
	cfg := sampleConfig()
	a := Serialize(cfg)
	b := Serialize(cfg)
	if !bytes.Equal(a, b) {
		t.Fatal("Serialize must be deterministic for equal input")
	}
}

func TestLoadInvalidMagic(t *testing.T) {
	data := Serialize(sampleConfig())
	data[0] = 'X'
	_, err := Load(data)
	var loadErr *LoadError
	if err == nil {
		t.Fatal("expected error")
	}
	if le, ok := err.(*LoadError); !ok || le.Kind != InvalidMagic {
		t.Fatalf("expected InvalidMagic, got %v (%T)", err, loadErr)
	}
}

func TestLoadTruncated(t *testing.T) {
	data := Serialize(sampleConfig())
	_, err := Load(data[:headerSize+2])
	if err == nil {
		t.Fatal("expected error")
	}
	le, ok := err.(*LoadError)
	if !ok || (le.Kind != Truncated && le.Kind != Corrupt) {
		t.Fatalf("expected Truncated or Corrupt, got %v", err)
	}
}

func TestLoadUnsupportedMajorVersion(t *testing.T) {
	cfg := sampleConfig()
	cfg.Version.Major = profile.SupportedMajor + 1
	data := Serialize(cfg)
	_, err := Load(data)
	le, ok := err.(*LoadError)
	if !ok || le.Kind != UnsupportedMajorVersion {
		t.Fatalf("expected UnsupportedMajorVersion, got %v", err)
	}
}

func TestLoadNeverPanics(t *testing.T) {
	inputs := [][]byte{
		nil,
		{},
		{0x4B, 0x52, 0x58, 0x00},
		{0x4B, 0x52, 0x58, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF},
		bytes.Repeat([]byte{0xAA}, 50),
	}
	for _, in := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("Load panicked on input %v: %v", in, r)
				}
			}()
			_, _ = Load(in)
		}()
	}
}
