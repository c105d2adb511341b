package profile

// ConditionKind tags which variant of the Condition AST a value holds.
type ConditionKind uint8

const (
	ConditionModifierActive ConditionKind = iota
	ConditionLockActive
	ConditionAllActive
	ConditionNotActive
	ConditionDeviceMatches
)

// ConditionItem is the restricted AST used inside AllActive/NotActive
// composites: only ModifierActive or LockActive, no nesting.
type ConditionItem struct {
	Kind ConditionKind // ConditionModifierActive or ConditionLockActive
	ID   uint8
}

// ModifierActiveItem builds a ConditionItem testing a modifier bit.
func ModifierActiveItem(id uint8) ConditionItem {
	return ConditionItem{Kind: ConditionModifierActive, ID: id}
}

// LockActiveItem builds a ConditionItem testing a lock bit.
func LockActiveItem(id uint8) ConditionItem {
	return ConditionItem{Kind: ConditionLockActive, ID: id}
}

// Condition is the full condition AST attached to a Conditional KeyMapping.
type Condition struct {
	Kind    ConditionKind
	ID      uint8           // ConditionModifierActive / ConditionLockActive
	Items   []ConditionItem // ConditionAllActive / ConditionNotActive
	Pattern string          // ConditionDeviceMatches
}

// ModifierActive builds a Condition testing a modifier bit.
func ModifierActive(id uint8) Condition {
	return Condition{Kind: ConditionModifierActive, ID: id}
}

// LockActive builds a Condition testing a lock bit.
func LockActive(id uint8) Condition {
	return Condition{Kind: ConditionLockActive, ID: id}
}

// AllActive builds an AND-composite of ConditionItems.
func AllActive(items ...ConditionItem) Condition {
	return Condition{Kind: ConditionAllActive, Items: items}
}

// NotActive builds a none-of composite of ConditionItems.
func NotActive(items ...ConditionItem) Condition {
	return Condition{Kind: ConditionNotActive, Items: items}
}

// DeviceMatches builds a Condition matching a device id glob pattern.
func DeviceMatches(pattern string) Condition {
	return Condition{Kind: ConditionDeviceMatches, Pattern: pattern}
}
