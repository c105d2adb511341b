// Package compiler implements the DSL → ConfigRoot compiler described in
// spec.md §4.2: a small stateful parser (Top/Device/Conditional states)
// over a textual configuration language, grounded in style on the
// teacher's cobra command parsing conventions for diagnostics (file,
// line, rule) and on the ANSI parser state-machine shape seen in the
// wider example pack (a linear token stream driving named-state
// transitions) rather than a grammar/parser-generator approach.
package compiler

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/keyrxd/keyrx/pkg/keycode"
	"github.com/keyrxd/keyrx/pkg/profile"
	"golang.org/x/crypto/blake2b"
)

// parserState is the per-source-file state table from spec.md §4.2.
type parserState uint8

const (
	stateTop parserState = iota
	stateDevice
	stateConditional
)

// Importer resolves a `load(path)` directive's textual content, given
// the file that contains the directive. Production use is an
// OS-filesystem-backed Importer (cmd/keyrxd wires one up); tests use an
// in-memory Importer.
type Importer interface {
	// Resolve returns the loaded source and a canonical path used for
	// cycle detection, trying fromFile-relative first, then stdlib/.
	Resolve(fromFile, path string) (content string, canonicalPath string, err error)
}

// compileCtx is one compilation's mutable state, threaded through
// directive handling and import recursion.
type compileCtx struct {
	state       parserState
	device      *profile.DeviceConfig
	condCond    profile.Condition
	condPending []profile.BaseKeyMapping

	devices []profile.DeviceConfig

	importer    Importer
	importStack []string // canonical paths currently being imported, for cycle detection
	sourceBuf   strings.Builder
}

// Compile compiles a single DSL source file (plus any files it
// transitively `load`s) into a ConfigRoot.
func Compile(source, fileName string, importer Importer) (profile.ConfigRoot, error) {
	ctx := &compileCtx{importer: importer}
	ctx.importStack = append(ctx.importStack, fileName)

	if err := ctx.compileFile(source, fileName); err != nil {
		return profile.ConfigRoot{}, err
	}
	if ctx.state != stateTop {
		return profile.ConfigRoot{}, newError(UnclosedBlock, fileName, 0, "file ended with an open device/when block")
	}

	root := profile.ConfigRoot{
		Version: profile.Version{Major: profile.SupportedMajor, Minor: 0, Patch: 0},
		Devices: ctx.devices,
		Metadata: profile.Metadata{
			CompileTimestampUnix: time.Now().Unix(),
			CompilerVersion:      "keyrxd-compiler/1.0",
			SourceHash:           blake2b.Sum256([]byte(ctx.sourceBuf.String())),
			BuildID:              uuid.New(),
		},
	}
	return root, nil
}

func (ctx *compileCtx) compileFile(source, fileName string) error {
	ctx.sourceBuf.WriteString(source)

	toks, err := lex(source)
	if err != nil {
		return newError(SyntaxError, fileName, 0, err.Error())
	}
	calls, err := parseProgram(toks)
	if err != nil {
		if se, ok := err.(*parseSyntaxErr); ok {
			return newError(SyntaxError, fileName, se.line, se.msg)
		}
		return newError(SyntaxError, fileName, 0, err.Error())
	}

	for _, c := range calls {
		if err := ctx.dispatch(c, fileName); err != nil {
			return err
		}
	}
	return nil
}

func (ctx *compileCtx) dispatch(c call, fileName string) error {
	switch c.name {
	case "device_start":
		return ctx.onDeviceStart(c, fileName)
	case "device_end":
		return ctx.onDeviceEnd(c, fileName)
	case "map":
		return ctx.onMap(c, fileName)
	case "tap_hold":
		return ctx.onTapHold(c, fileName)
	case "when_start":
		return ctx.onWhenStart(c, fileName, false)
	case "when_not_start":
		return ctx.onWhenStart(c, fileName, true)
	case "when_end", "when_not_end":
		return ctx.onWhenEnd(c, fileName)
	case "load":
		return ctx.onLoad(c, fileName)
	default:
		return newError(SyntaxError, fileName, c.line, "unknown directive "+c.name)
	}
}

func (ctx *compileCtx) closeDeviceIfOpen() {
	if ctx.device != nil {
		ctx.devices = append(ctx.devices, *ctx.device)
		ctx.device = nil
	}
}

func (ctx *compileCtx) onDeviceStart(c call, fileName string) error {
	if len(c.args) != 1 || c.args[0].kind != argString {
		return newError(SyntaxError, fileName, c.line, "device_start(pattern) expects one string argument")
	}
	if ctx.state == stateConditional {
		// An open when-block that never saw when_end/when_not_end is
		// abandoned the same way device_end abandons one (§4.2 hazard):
		// its pending mappings are discarded.
		ctx.condPending = nil
	}
	ctx.closeDeviceIfOpen()
	ctx.device = &profile.DeviceConfig{Identifier: profile.DeviceIdentifier{Pattern: c.args[0].str}}
	ctx.state = stateDevice
	return nil
}

func (ctx *compileCtx) onDeviceEnd(c call, fileName string) error {
	switch ctx.state {
	case stateTop:
		return newError(MismatchedEnd, fileName, c.line, "device_end() with no open device_start")
	case stateConditional:
		// Auto-close hazard (spec.md §9, §4.2 parser table): the pending
		// conditional's mappings are silently discarded, matching the
		// reference compiler's documented behavior.
		ctx.condPending = nil
		ctx.state = stateDevice
		fallthrough
	case stateDevice:
		ctx.closeDeviceIfOpen()
		ctx.state = stateTop
	}
	return nil
}

func (ctx *compileCtx) onWhenStart(c call, fileName string, negated bool) error {
	if ctx.state == stateTop {
		return newError(SyntaxError, fileName, c.line, "when_start/when_not_start outside device")
	}
	if ctx.state == stateConditional {
		return newError(NestedWhen, fileName, c.line, "nested when_start/when_not_start")
	}

	items, err := ctx.resolveConditionItems(c, fileName)
	if err != nil {
		return err
	}

	var cond profile.Condition
	if negated {
		cond = profile.NotActive(items...)
	} else {
		cond = profile.AllActive(items...)
	}

	ctx.condCond = cond
	ctx.condPending = nil
	ctx.state = stateConditional
	return nil
}

func (ctx *compileCtx) resolveConditionItems(c call, fileName string) ([]profile.ConditionItem, error) {
	var rawIdents []arg
	if len(c.args) == 1 && c.args[0].kind == argList {
		rawIdents = c.args[0].list
	} else {
		rawIdents = c.args
	}

	var items []profile.ConditionItem
	for _, a := range rawIdents {
		if a.kind != argString {
			return nil, newError(SyntaxError, fileName, c.line, "when_start condition identifiers must be strings")
		}
		switch {
		case strings.HasPrefix(a.str, "MD_"):
			id, err := parseStateIDSuffix("MD_", a.str, fileName, c.line)
			if err != nil {
				return nil, err
			}
			items = append(items, profile.ModifierActiveItem(id))
		case strings.HasPrefix(a.str, "LK_"):
			id, err := parseStateIDSuffix("LK_", a.str, fileName, c.line)
			if err != nil {
				return nil, err
			}
			items = append(items, profile.LockActiveItem(id))
		default:
			return nil, newError(MissingPrefix, fileName, c.line, "condition identifier must be MD_xx or LK_xx, got "+a.str)
		}
	}
	return items, nil
}

func (ctx *compileCtx) onWhenEnd(c call, fileName string) error {
	if ctx.state != stateConditional {
		return newError(MismatchedEnd, fileName, c.line, "when_end/when_not_end with no open when_start")
	}
	if ctx.device == nil {
		return newError(SyntaxError, fileName, c.line, "internal: conditional close with no open device")
	}
	ctx.device.Mappings = append(ctx.device.Mappings,
		profile.ConditionalMapping(ctx.condCond, ctx.condPending...))
	ctx.condPending = nil
	ctx.state = stateDevice
	return nil
}

func (ctx *compileCtx) appendBaseMapping(m profile.BaseKeyMapping) {
	switch ctx.state {
	case stateConditional:
		ctx.condPending = append(ctx.condPending, m)
	case stateDevice:
		ctx.device.Mappings = append(ctx.device.Mappings, profile.BaseMapping(m))
	}
}

func (ctx *compileCtx) onMap(c call, fileName string) error {
	if ctx.state == stateTop {
		return newError(SyntaxError, fileName, c.line, "map() outside device")
	}
	if len(c.args) != 2 || c.args[0].kind != argString {
		return newError(SyntaxError, fileName, c.line, "map(from, target) expects a string and a target")
	}

	from, ok := resolveFromKey(c.args[0].str)
	if !ok {
		return newError(SyntaxError, fileName, c.line, "unknown key name "+c.args[0].str)
	}

	target := c.args[1]
	switch target.kind {
	case argString:
		m, err := ctx.resolveSimpleTarget(from, target.str, fileName, c.line)
		if err != nil {
			return err
		}
		ctx.appendBaseMapping(m)
	case argCall:
		m, err := ctx.resolveModifiedOutputTarget(from, *target.call, fileName, c.line)
		if err != nil {
			return err
		}
		ctx.appendBaseMapping(m)
	default:
		return newError(SyntaxError, fileName, c.line, "map target must be a VK_/MD_/LK_ string or a with_* helper call")
	}
	return nil
}

func (ctx *compileCtx) resolveSimpleTarget(from keycode.KeyCode, target, fileName string, line int) (profile.BaseKeyMapping, error) {
	switch {
	case strings.HasPrefix(target, "VK_"):
		to, ok := resolveVKTarget(target)
		if !ok {
			return profile.BaseKeyMapping{}, newError(SyntaxError, fileName, line, "unknown key name "+target)
		}
		return profile.Simple(from, to), nil
	case strings.HasPrefix(target, "MD_"):
		id, err := parseStateIDSuffix("MD_", target, fileName, line)
		if err != nil {
			return profile.BaseKeyMapping{}, err
		}
		return profile.Modifier(from, id), nil
	case strings.HasPrefix(target, "LK_"):
		id, err := parseStateIDSuffix("LK_", target, fileName, line)
		if err != nil {
			return profile.BaseKeyMapping{}, err
		}
		return profile.Lock(from, id), nil
	default:
		return profile.BaseKeyMapping{}, newError(MissingPrefix, fileName, line,
			"map target must be prefixed VK_/MD_/LK_, got "+target)
	}
}

func (ctx *compileCtx) resolveModifiedOutputTarget(from keycode.KeyCode, helper call, fileName string, line int) (profile.BaseKeyMapping, error) {
	var shift, ctrlFlag, alt, win bool
	var toArg string

	switch helper.name {
	case "with_shift":
		shift = true
	case "with_ctrl":
		ctrlFlag = true
	case "with_alt":
		alt = true
	case "with_win":
		win = true
	case "with_mods":
		if len(helper.args) != 5 {
			return profile.BaseKeyMapping{}, newError(SyntaxError, fileName, line,
				"with_mods(target, shift, ctrl, alt, win) expects 5 arguments")
		}
		if helper.args[0].kind != argString {
			return profile.BaseKeyMapping{}, newError(SyntaxError, fileName, line, "with_mods target must be a string")
		}
		toArg = helper.args[0].str
		shift, ctrlFlag, alt, win = helper.args[1].boolV, helper.args[2].boolV, helper.args[3].boolV, helper.args[4].boolV
		to, ok := resolveVKTarget(toArg)
		if !ok {
			return profile.BaseKeyMapping{}, newError(SyntaxError, fileName, line, "unknown key name "+toArg)
		}
		return profile.ModifiedOutput(from, to, shift, ctrlFlag, alt, win), nil
	default:
		return profile.BaseKeyMapping{}, newError(SyntaxError, fileName, line, "unknown map-target helper "+helper.name)
	}

	if len(helper.args) != 1 || helper.args[0].kind != argString {
		return profile.BaseKeyMapping{}, newError(SyntaxError, fileName, line, helper.name+"(target) expects one string argument")
	}
	toArg = helper.args[0].str
	to, ok := resolveVKTarget(toArg)
	if !ok {
		return profile.BaseKeyMapping{}, newError(SyntaxError, fileName, line, "unknown key name "+toArg)
	}
	return profile.ModifiedOutput(from, to, shift, ctrlFlag, alt, win), nil
}

func (ctx *compileCtx) onTapHold(c call, fileName string) error {
	if ctx.state == stateTop {
		return newError(SyntaxError, fileName, c.line, "tap_hold() outside device")
	}
	if len(c.args) != 4 {
		return newError(SyntaxError, fileName, c.line, "tap_hold(from, tap, hold, threshold_ms) expects 4 arguments")
	}
	if c.args[0].kind != argString || c.args[1].kind != argString || c.args[2].kind != argString || c.args[3].kind != argNumber {
		return newError(SyntaxError, fileName, c.line, "tap_hold argument types must be (string, string, string, number)")
	}

	from, ok := resolveFromKey(c.args[0].str)
	if !ok {
		return newError(SyntaxError, fileName, c.line, "unknown key name "+c.args[0].str)
	}
	tap, ok := resolveVKTarget(c.args[1].str)
	if !ok {
		return newError(MissingPrefix, fileName, c.line, "tap argument must have VK_ prefix and resolve to a KeyCode, got "+c.args[1].str)
	}
	hold, err := parseStateIDSuffix("MD_", c.args[2].str, fileName, c.line)
	if err != nil {
		return err
	}
	if c.args[3].num > 0xFFFF {
		return newError(OutOfRangeID, fileName, c.line, "threshold_ms must fit in 16 bits")
	}
	ctx.appendBaseMapping(profile.TapHold(from, tap, hold, uint16(c.args[3].num)))
	return nil
}
