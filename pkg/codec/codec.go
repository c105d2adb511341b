// Package codec implements the `.krx` binary archive format: a
// deterministic serialize(ConfigRoot) -> bytes and its inverse
// load(bytes) -> ConfigRoot, per spec.md §4.1 and §6. Layout is manually
// packed little-endian (encoding/binary), grounded on the teacher's WAL
// file format (pkg/wal/mmap.go: fixed magic + version header, manual
// LittleEndian field writes) rather than a flatbuffers archive: without
// flatc code generation available in this environment, hand-rolling
// flatbuffer vtables byte-for-byte is a correctness risk the magic+
// header+encoding/binary approach avoids while still satisfying the
// "zero-copy access to top-level fields" requirement (the header's
// fixed-offset fields are readable without touching the payload).
package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/keyrxd/keyrx/pkg/keycode"
	"github.com/keyrxd/keyrx/pkg/profile"
)

// Magic is the 4-byte signature at offset 0 of every .krx file.
var Magic = [4]byte{'K', 'R', 'X', 0}

const headerSize = 4 + 2 + 2 + 2 // magic + major + minor + patch

// DefaultMaxFileSize is the suggested upper bound from spec.md §6.
const DefaultMaxFileSize = 100 * 1024

// Serialize encodes cfg deterministically: two calls with an equal
// ConfigRoot MUST produce byte-identical output (P3). All containers in
// ConfigRoot are already ordered slices, so a straight linear encode
// with no map iteration anywhere satisfies this by construction.
func Serialize(cfg profile.ConfigRoot) []byte {
	w := newWriter()
	w.bytes(Magic[:])
	w.u16(cfg.Version.Major)
	w.u16(cfg.Version.Minor)
	w.u16(cfg.Version.Patch)

	w.u32(uint32(len(cfg.Devices)))
	for _, dev := range cfg.Devices {
		writeDevice(w, dev)
	}

	w.i64(cfg.Metadata.CompileTimestampUnix)
	w.str(cfg.Metadata.CompilerVersion)
	w.bytes(cfg.Metadata.SourceHash[:])
	w.bytes(cfg.Metadata.BuildID[:])

	return w.buf
}

// Load decodes a .krx archive, rejecting malformed input with a typed
// LoadError instead of panicking.
func Load(data []byte) (profile.ConfigRoot, error) {
	var out profile.ConfigRoot
	if len(data) < headerSize {
		return out, newLoadError(Truncated, "file shorter than header")
	}

	r := newReader(data)
	var magic [4]byte
	copy(magic[:], r.take(4))
	if magic != Magic {
		return out, newLoadError(InvalidMagic, fmt.Sprintf("got %v", magic))
	}

	out.Version.Major = r.u16()
	out.Version.Minor = r.u16()
	out.Version.Patch = r.u16()
	if r.err != nil {
		return out, newLoadError(Truncated, r.err.Error())
	}
	if out.Version.Major != profile.SupportedMajor {
		return out, newLoadError(UnsupportedMajorVersion,
			fmt.Sprintf("got %d, want %d", out.Version.Major, profile.SupportedMajor))
	}

	deviceCount := r.u32()
	if r.err != nil {
		return out, newLoadError(Truncated, r.err.Error())
	}
	if int64(deviceCount) > int64(len(r.data)-r.pos) {
		return out, newLoadError(Truncated, fmt.Sprintf("device count %d exceeds remaining data", deviceCount))
	}
	out.Devices = make([]profile.DeviceConfig, 0, deviceCount)
	for i := uint32(0); i < deviceCount; i++ {
		dev, err := readDevice(r)
		if err != nil {
			return out, err
		}
		out.Devices = append(out.Devices, dev)
	}

	out.Metadata.CompileTimestampUnix = r.i64()
	out.Metadata.CompilerVersion = r.str()
	copy(out.Metadata.SourceHash[:], r.take(32))
	copy(out.Metadata.BuildID[:], r.take(16))

	if r.err != nil {
		return out, newLoadError(Corrupt, r.err.Error())
	}
	return out, nil
}

func writeDevice(w *writer, dev profile.DeviceConfig) {
	w.str(dev.Identifier.Pattern)
	w.u32(uint32(len(dev.Mappings)))
	for _, m := range dev.Mappings {
		writeKeyMapping(w, m)
	}
}

func readDevice(r *reader) (profile.DeviceConfig, error) {
	var dev profile.DeviceConfig
	dev.Identifier.Pattern = r.str()
	count := r.u32()
	if r.err != nil {
		return dev, newLoadError(Truncated, r.err.Error())
	}
	if int64(count) > int64(len(r.data)-r.pos) {
		return dev, newLoadError(Truncated, fmt.Sprintf("mapping count %d exceeds remaining data", count))
	}
	dev.Mappings = make([]profile.KeyMapping, 0, count)
	for i := uint32(0); i < count; i++ {
		m, err := readKeyMapping(r)
		if err != nil {
			return dev, err
		}
		dev.Mappings = append(dev.Mappings, m)
	}
	return dev, nil
}

const (
	keyMappingBaseTag        = 0
	keyMappingConditionalTag = 1
)

func writeKeyMapping(w *writer, m profile.KeyMapping) {
	switch m.Kind {
	case profile.KeyMappingBase:
		w.u8(keyMappingBaseTag)
		writeBaseMapping(w, m.Base)
	case profile.KeyMappingConditional:
		w.u8(keyMappingConditionalTag)
		writeCondition(w, m.Condition)
		w.u32(uint32(len(m.Mappings)))
		for _, base := range m.Mappings {
			writeBaseMapping(w, base)
		}
	}
}

func readKeyMapping(r *reader) (profile.KeyMapping, error) {
	tag := r.u8()
	switch tag {
	case keyMappingBaseTag:
		base, err := readBaseMapping(r)
		if err != nil {
			return profile.KeyMapping{}, err
		}
		return profile.BaseMapping(base), nil
	case keyMappingConditionalTag:
		cond, err := readCondition(r)
		if err != nil {
			return profile.KeyMapping{}, err
		}
		count := r.u32()
		if r.err != nil {
			return profile.KeyMapping{}, newLoadError(Truncated, r.err.Error())
		}
		if int64(count) > int64(len(r.data)-r.pos) {
			return profile.KeyMapping{}, newLoadError(Truncated, fmt.Sprintf("mapping count %d exceeds remaining data", count))
		}
		mappings := make([]profile.BaseKeyMapping, 0, count)
		for i := uint32(0); i < count; i++ {
			base, err := readBaseMapping(r)
			if err != nil {
				return profile.KeyMapping{}, err
			}
			mappings = append(mappings, base)
		}
		return profile.ConditionalMapping(cond, mappings...), nil
	default:
		return profile.KeyMapping{}, newLoadError(Corrupt, fmt.Sprintf("unknown KeyMapping tag %d", tag))
	}
}

const (
	condModifierActiveTag = 0
	condLockActiveTag     = 1
	condAllActiveTag      = 2
	condNotActiveTag      = 3
	condDeviceMatchesTag  = 4
)

func writeCondition(w *writer, c profile.Condition) {
	switch c.Kind {
	case profile.ConditionModifierActive:
		w.u8(condModifierActiveTag)
		w.u8(c.ID)
	case profile.ConditionLockActive:
		w.u8(condLockActiveTag)
		w.u8(c.ID)
	case profile.ConditionAllActive:
		w.u8(condAllActiveTag)
		writeConditionItems(w, c.Items)
	case profile.ConditionNotActive:
		w.u8(condNotActiveTag)
		writeConditionItems(w, c.Items)
	case profile.ConditionDeviceMatches:
		w.u8(condDeviceMatchesTag)
		w.str(c.Pattern)
	}
}

func writeConditionItems(w *writer, items []profile.ConditionItem) {
	w.u16(uint16(len(items)))
	for _, item := range items {
		switch item.Kind {
		case profile.ConditionModifierActive:
			w.u8(condModifierActiveTag)
		case profile.ConditionLockActive:
			w.u8(condLockActiveTag)
		}
		w.u8(item.ID)
	}
}

func readCondition(r *reader) (profile.Condition, error) {
	tag := r.u8()
	switch tag {
	case condModifierActiveTag:
		return profile.ModifierActive(r.u8()), r.loadErr()
	case condLockActiveTag:
		return profile.LockActive(r.u8()), r.loadErr()
	case condAllActiveTag:
		items, err := readConditionItems(r)
		return profile.Condition{Kind: profile.ConditionAllActive, Items: items}, err
	case condNotActiveTag:
		items, err := readConditionItems(r)
		return profile.Condition{Kind: profile.ConditionNotActive, Items: items}, err
	case condDeviceMatchesTag:
		return profile.DeviceMatches(r.str()), r.loadErr()
	default:
		return profile.Condition{}, newLoadError(Corrupt, fmt.Sprintf("unknown Condition tag %d", tag))
	}
}

func readConditionItems(r *reader) ([]profile.ConditionItem, error) {
	count := r.u16()
	if r.err != nil {
		return nil, newLoadError(Truncated, r.err.Error())
	}
	items := make([]profile.ConditionItem, 0, count)
	for i := uint16(0); i < count; i++ {
		kindTag := r.u8()
		id := r.u8()
		if r.err != nil {
			return nil, newLoadError(Truncated, r.err.Error())
		}
		var kind profile.ConditionKind
		switch kindTag {
		case condModifierActiveTag:
			kind = profile.ConditionModifierActive
		case condLockActiveTag:
			kind = profile.ConditionLockActive
		default:
			return nil, newLoadError(Corrupt, fmt.Sprintf("unknown ConditionItem tag %d", kindTag))
		}
		items = append(items, profile.ConditionItem{Kind: kind, ID: id})
	}
	return items, nil
}

func writeBaseMapping(w *writer, m profile.BaseKeyMapping) {
	w.u8(uint8(m.Kind))
	w.u16(uint16(m.From))
	switch m.Kind {
	case profile.MappingSimple:
		w.u16(uint16(m.To))
	case profile.MappingModifier, profile.MappingLock:
		w.u8(m.StateID)
	case profile.MappingTapHold:
		w.u16(uint16(m.Tap))
		w.u8(m.HoldModifier)
		w.u16(m.ThresholdMS)
	case profile.MappingModifiedOutput:
		w.u16(uint16(m.ModOutTo))
		var flags uint8
		if m.ModShift {
			flags |= 1 << 0
		}
		if m.ModCtrl {
			flags |= 1 << 1
		}
		if m.ModAlt {
			flags |= 1 << 2
		}
		if m.ModWin {
			flags |= 1 << 3
		}
		w.u8(flags)
	}
}

func readBaseMapping(r *reader) (profile.BaseKeyMapping, error) {
	kind := profile.BaseMappingKind(r.u8())
	from := keycode.KeyCode(r.u16())
	if r.err != nil {
		return profile.BaseKeyMapping{}, newLoadError(Truncated, r.err.Error())
	}

	switch kind {
	case profile.MappingSimple:
		to := keycode.KeyCode(r.u16())
		return profile.Simple(from, to), r.loadErr()
	case profile.MappingModifier:
		id := r.u8()
		return profile.Modifier(from, id), r.loadErr()
	case profile.MappingLock:
		id := r.u8()
		return profile.Lock(from, id), r.loadErr()
	case profile.MappingTapHold:
		tap := keycode.KeyCode(r.u16())
		hold := r.u8()
		threshold := r.u16()
		return profile.TapHold(from, tap, hold, threshold), r.loadErr()
	case profile.MappingModifiedOutput:
		to := keycode.KeyCode(r.u16())
		flags := r.u8()
		m := profile.ModifiedOutput(from, to,
			flags&(1<<0) != 0, flags&(1<<1) != 0, flags&(1<<2) != 0, flags&(1<<3) != 0)
		return m, r.loadErr()
	default:
		return profile.BaseKeyMapping{}, newLoadError(Corrupt, fmt.Sprintf("unknown BaseKeyMapping kind %d", kind))
	}
}

// writer is a deterministic little-endian byte sink, grounded on the
// teacher's manual binary.LittleEndian.PutUintNN writes in pkg/wal/mmap.go.
type writer struct {
	buf []byte
}

func newWriter() *writer {
	return &writer{buf: make([]byte, 0, 256)}
}

func (w *writer) bytes(b []byte) { w.buf = append(w.buf, b...) }
func (w *writer) u8(v uint8)     { w.buf = append(w.buf, v) }

func (w *writer) u16(v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

func (w *writer) u32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

func (w *writer) i64(v int64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(v))
	w.buf = append(w.buf, tmp[:]...)
}

func (w *writer) str(s string) {
	w.u16(uint16(len(s)))
	w.buf = append(w.buf, s...)
}

// reader walks a byte slice, recording the first error encountered so
// callers can issue one bounds check at the end of a record instead of
// after every field.
type reader struct {
	data []byte
	pos  int
	err  error
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.pos+n > len(r.data) {
		r.err = fmt.Errorf("unexpected end of data at offset %d reading %d bytes", r.pos, n)
		return make([]byte, n)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *reader) u8() uint8 {
	b := r.take(1)
	return b[0]
}

func (r *reader) u16() uint16 {
	return binary.LittleEndian.Uint16(r.take(2))
}

func (r *reader) u32() uint32 {
	return binary.LittleEndian.Uint32(r.take(4))
}

func (r *reader) i64() int64 {
	return int64(binary.LittleEndian.Uint64(r.take(8)))
}

func (r *reader) str() string {
	n := r.u16()
	if r.err != nil {
		return ""
	}
	return string(r.take(int(n)))
}

func (r *reader) loadErr() error {
	if r.err == nil {
		return nil
	}
	return newLoadError(Truncated, r.err.Error())
}
