//go:build darwin

package platform

// DarwinPlatform targets macOS's CGEventTap capture and CGEventPost
// injection APIs. Both require cgo bindings against the ApplicationServices
// framework (Quartz Event Services); keycodes_darwin.go carries the
// kVK_* keycode table those bindings would consume, but the bindings
// themselves are not implemented in this build: without a macOS
// toolchain to compile and exercise a cgo bridge, an unverified one
// would be worse than an explicit error.
type DarwinPlatform struct{}

// NewDarwinPlatform builds the (currently stubbed) macOS platform.
func NewDarwinPlatform() *DarwinPlatform {
	return &DarwinPlatform{}
}

// New builds the platform for the current OS.
func New() Platform { return NewDarwinPlatform() }

func (p *DarwinPlatform) Name() string { return "darwin-cgeventtap" }

func (p *DarwinPlatform) Discover() ([]InputDevice, error) {
	return nil, newDeviceError(OpenFailed, "darwin CGEventTap capture requires a cgo bridge not built in this package")
}

func (p *DarwinPlatform) Output() (OutputDevice, error) {
	return nil, newDeviceError(OpenFailed, "darwin CGEventPost injection requires a cgo bridge not built in this package")
}
