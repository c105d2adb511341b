package profile

// DeviceIdentifier scopes a DeviceConfig to devices whose id matches
// Pattern (see MatchDevicePattern).
type DeviceIdentifier struct {
	Pattern string
}

// DeviceConfig is one block of mappings guarded by a device pattern.
// Mapping order within a device is significant for first-match selection
// (§4.4) and must be preserved byte-for-byte across codec round-trips.
type DeviceConfig struct {
	Identifier DeviceIdentifier
	Mappings   []KeyMapping
}

// Version is the compiled config's semantic version. Major must match
// the runtime's supported major version exactly (I4); minor/patch may
// differ.
type Version struct {
	Major uint16
	Minor uint16
	Patch uint16
}

// SupportedMajor is the major version this runtime accepts.
const SupportedMajor uint16 = 1

// Metadata carries provenance information about a compiled ConfigRoot.
// CompileTimestampUnix is seconds since the Unix epoch; SourceHash is a
// blake2b-256 digest of the compiler's resolved, concatenated source
// (see pkg/compiler). BuildID is a random per-compile-run correlation
// id, surfaced by `keyrxd compile -v` so a deployed .krx file can be
// traced back to the compile invocation that produced it.
type Metadata struct {
	CompileTimestampUnix int64
	CompilerVersion      string
	SourceHash           [32]byte
	BuildID              [16]byte
}

// ConfigRoot is the full compiled configuration: the unit the DSL
// compiler produces and the binary codec serializes/loads.
type ConfigRoot struct {
	Version  Version
	Devices  []DeviceConfig
	Metadata Metadata
}
