package devicestate

import "github.com/keyrxd/keyrx/pkg/profile"

// Evaluate implements §4.5: evaluate(cond, state, device_id). deviceID
// is nil when the device is unknown; DeviceMatches is false in that case.
func Evaluate(cond profile.Condition, state *State, deviceID *string) bool {
	switch cond.Kind {
	case profile.ConditionModifierActive:
		return state.IsModifierActive(cond.ID)
	case profile.ConditionLockActive:
		return state.IsLockActive(cond.ID)
	case profile.ConditionAllActive:
		for _, item := range cond.Items {
			if !evaluateItem(item, state) {
				return false
			}
		}
		return true
	case profile.ConditionNotActive:
		for _, item := range cond.Items {
			if evaluateItem(item, state) {
				return false
			}
		}
		return true
	case profile.ConditionDeviceMatches:
		if deviceID == nil {
			return false
		}
		return profile.MatchDevicePattern(cond.Pattern, *deviceID)
	default:
		return false
	}
}

func evaluateItem(item profile.ConditionItem, state *State) bool {
	switch item.Kind {
	case profile.ConditionModifierActive:
		return state.IsModifierActive(item.ID)
	case profile.ConditionLockActive:
		return state.IsLockActive(item.ID)
	default:
		return false
	}
}
