package profile

import "github.com/keyrxd/keyrx/pkg/keycode"

// BaseMappingKind tags which variant of BaseKeyMapping a value holds.
type BaseMappingKind uint8

const (
	MappingSimple BaseMappingKind = iota
	MappingModifier
	MappingLock
	MappingTapHold
	MappingModifiedOutput
)

// BaseKeyMapping is a flat (non-conditional) key mapping. Exactly the
// fields relevant to Kind are meaningful; the others are zero.
type BaseKeyMapping struct {
	Kind BaseMappingKind
	From keycode.KeyCode

	// MappingSimple
	To keycode.KeyCode

	// MappingModifier / MappingLock
	StateID uint8

	// MappingTapHold
	Tap          keycode.KeyCode
	HoldModifier uint8
	ThresholdMS  uint16

	// MappingModifiedOutput
	ModOutTo    keycode.KeyCode
	ModShift    bool
	ModCtrl     bool
	ModAlt      bool
	ModWin      bool
}

// Simple builds a Simple{from,to} mapping.
func Simple(from, to keycode.KeyCode) BaseKeyMapping {
	return BaseKeyMapping{Kind: MappingSimple, From: from, To: to}
}

// Modifier builds a Modifier{from,modifier_id} mapping.
func Modifier(from keycode.KeyCode, modifierID uint8) BaseKeyMapping {
	return BaseKeyMapping{Kind: MappingModifier, From: from, StateID: modifierID}
}

// Lock builds a Lock{from,lock_id} mapping.
func Lock(from keycode.KeyCode, lockID uint8) BaseKeyMapping {
	return BaseKeyMapping{Kind: MappingLock, From: from, StateID: lockID}
}

// TapHold builds a TapHold{from,tap,hold_modifier,threshold_ms} mapping.
func TapHold(from, tap keycode.KeyCode, holdModifier uint8, thresholdMS uint16) BaseKeyMapping {
	return BaseKeyMapping{
		Kind:         MappingTapHold,
		From:         from,
		Tap:          tap,
		HoldModifier: holdModifier,
		ThresholdMS:  thresholdMS,
	}
}

// ModifiedOutput builds a ModifiedOutput{from,to,shift,ctrl,alt,win} mapping.
func ModifiedOutput(from, to keycode.KeyCode, shift, ctrl, alt, win bool) BaseKeyMapping {
	return BaseKeyMapping{
		Kind:     MappingModifiedOutput,
		From:     from,
		ModOutTo: to,
		ModShift: shift,
		ModCtrl:  ctrl,
		ModAlt:   alt,
		ModWin:   win,
	}
}

// KeyMappingKind tags which variant of KeyMapping a value holds.
type KeyMappingKind uint8

const (
	KeyMappingBase KeyMappingKind = iota
	KeyMappingConditional
)

// KeyMapping is Base(BaseKeyMapping) | Conditional{condition, mappings}.
// Conditional nesting is one level deep: a Conditional's Mappings are
// always BaseKeyMapping, never another Conditional.
type KeyMapping struct {
	Kind      KeyMappingKind
	Base      BaseKeyMapping
	Condition Condition
	Mappings  []BaseKeyMapping
}

// BaseMapping wraps a flat mapping as a KeyMapping.
func BaseMapping(m BaseKeyMapping) KeyMapping {
	return KeyMapping{Kind: KeyMappingBase, Base: m}
}

// ConditionalMapping wraps a guarded group of flat mappings.
func ConditionalMapping(cond Condition, mappings ...BaseKeyMapping) KeyMapping {
	return KeyMapping{Kind: KeyMappingConditional, Condition: cond, Mappings: mappings}
}
