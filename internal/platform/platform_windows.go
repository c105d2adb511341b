//go:build windows

package platform

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/keyrxd/keyrx/pkg/keycode"
)

var (
	user32                 = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookExW  = user32.NewProc("SetWindowsHookExW")
	procCallNextHookEx     = user32.NewProc("CallNextHookEx")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procGetMessageW        = user32.NewProc("GetMessageW")
	procSendInput          = user32.NewProc("SendInput")
)

const (
	whKeyboardLL  = 13
	wmKeyDown     = 0x0100
	wmKeyUp       = 0x0101
	wmSysKeyDown  = 0x0104
	wmSysKeyUp    = 0x0105
	inputKeyboard = 1
	keyeventfKeyup = 0x0002
)

// kbdllHookStruct mirrors the Win32 KBDLLHOOKSTRUCT layout.
type kbdllHookStruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

// WindowsPlatform captures keyboard events via a WH_KEYBOARD_LL hook and
// injects synthetic events via SendInput.
type WindowsPlatform struct {
	mu       sync.Mutex
	hookID   uintptr
	queue    chan keycode.KeyEvent
	deviceID string
	blocked  atomic.Pointer[func(keycode.KeyCode) bool]
}

// SetBlocked installs the predicate hookProc consults to decide whether
// to suppress a captured key's original delivery (WH_KEYBOARD_LL has no
// exclusive-grab equivalent, so a remapped key must be blocked here or
// the OS sees both the original and the injected replacement).
func (p *WindowsPlatform) SetBlocked(isBlocked func(keycode.KeyCode) bool) {
	p.blocked.Store(&isBlocked)
}

// NewWindowsPlatform builds a platform backed by a single low-level
// keyboard hook (Windows delivers all keyboards through one logical
// stream unless raw input device handles are separately enumerated).
func NewWindowsPlatform() *WindowsPlatform {
	return &WindowsPlatform{queue: make(chan keycode.KeyEvent, 256), deviceID: "keyboard0"}
}

// New builds the platform for the current OS.
func New() Platform { return NewWindowsPlatform() }

func (p *WindowsPlatform) Name() string { return "windows-lli" }

func (p *WindowsPlatform) Discover() ([]InputDevice, error) {
	hookID, _, err := procSetWindowsHookExW.Call(
		uintptr(whKeyboardLL),
		windows.NewCallback(p.hookProc),
		0,
		0,
	)
	if hookID == 0 {
		return nil, newDeviceError(OpenFailed, fmt.Sprintf("SetWindowsHookExW failed: %v", err))
	}
	p.hookID = hookID
	go p.pumpMessages()
	return []InputDevice{&winHookInput{platform: p}}, nil
}

func (p *WindowsPlatform) hookProc(nCode int, wParam uintptr, lParam uintptr) uintptr {
	if nCode >= 0 {
		kb := (*kbdllHookStruct)(unsafe.Pointer(lParam))
		kc, ok := vkToKeyCode[kb.VkCode]
		if ok {
			ts := uint64(kb.Time) * 1000
			switch wParam {
			case wmKeyDown, wmSysKeyDown:
				p.queue <- keycode.NewPress(kc, ts)
			case wmKeyUp, wmSysKeyUp:
				p.queue <- keycode.NewRelease(kc, ts)
			}
			if isBlocked := p.blocked.Load(); isBlocked != nil && (*isBlocked)(kc) {
				// Suppress: the daemon already queued this key for
				// remapping and will inject its replacement via
				// SendInput, so the original must not also reach the OS.
				return 1
			}
		}
	}
	ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return ret
}

func (p *WindowsPlatform) Output() (OutputDevice, error) {
	return &winSendInputOutput{}, nil
}

// winHookInput adapts WindowsPlatform's shared hook queue to the
// InputDevice interface.
type winHookInput struct {
	platform *WindowsPlatform
}

func (d *winHookInput) ID() string { return d.platform.deviceID }

func (d *winHookInput) NextEvent() (keycode.KeyEvent, error) {
	ev, ok := <-d.platform.queue
	if !ok {
		return keycode.KeyEvent{}, newDeviceError(EndOfStream, "")
	}
	return ev, nil
}

// Grab/Release are no-ops: WH_KEYBOARD_LL always observes events ahead
// of the normal dispatch queue; true exclusivity needs a kernel-mode
// filter driver, out of scope here.
func (d *winHookInput) Grab() error    { return nil }
func (d *winHookInput) Release() error { return nil }

// pumpMessages runs the Win32 message loop WH_KEYBOARD_LL requires to
// fire; the daemon runs this on a dedicated goroutine after Discover.
func (p *WindowsPlatform) pumpMessages() {
	var msg struct {
		hwnd    uintptr
		message uint32
		wParam  uintptr
		lParam  uintptr
		time    uint32
		pt      struct{ x, y int32 }
	}
	for {
		ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
		if int32(ret) <= 0 {
			return
		}
	}
}

// Close unhooks the installed keyboard hook.
func (p *WindowsPlatform) Close() error {
	if p.hookID == 0 {
		return nil
	}
	ret, _, _ := procUnhookWindowsHookEx.Call(p.hookID)
	if ret == 0 {
		return newDeviceError(OpenFailed, "UnhookWindowsHookEx failed")
	}
	close(p.queue)
	return nil
}

type winSendInputOutput struct{}

// keybdInput mirrors the Win32 KEYBDINPUT member of the tagINPUT union,
// padded to INPUT's size on 64-bit Windows.
type keybdInput struct {
	Type uint32
	_    uint32
	Vk          uint16
	Scan        uint16
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
	_           uint64
}

func (o *winSendInputOutput) InjectEvent(ev keycode.KeyEvent) error {
	vk, ok := keyCodeToVK[ev.Key]
	if !ok {
		return newDeviceError(InjectionFailed, fmt.Sprintf("no VK mapping for %s", ev.Key))
	}
	var flags uint32
	if ev.Kind == keycode.Release {
		flags = keyeventfKeyup
	}
	input := keybdInput{Type: inputKeyboard, Vk: uint16(vk), Flags: flags}
	ret, _, err := procSendInput.Call(1, uintptr(unsafe.Pointer(&input)), unsafe.Sizeof(input))
	if ret == 0 {
		return newDeviceError(InjectionFailed, fmt.Sprintf("SendInput failed: %v", err))
	}
	return nil
}
