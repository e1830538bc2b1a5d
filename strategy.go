package remap

// Strategy identifies the conversion strategy chosen for a target field.
type Strategy int

const (
	// StrategyAssign copies the source field directly
	StrategyAssign Strategy = iota
	// StrategyAssignIfSet copies only when the source field was explicitly set
	StrategyAssignIfSet
	// StrategyAssignIfNotNil copies only when the source value is not nil
	StrategyAssignIfNotNil
	// StrategyRecurse converts through a registered routine
	StrategyRecurse
	// StrategyRecurseList converts every sequence element through a registered routine
	StrategyRecurseList
	// StrategyRecurseListIfNotNil converts elements only when the source sequence is not nil
	StrategyRecurseListIfNotNil
	// StrategyProduce invokes a producer function
	StrategyProduce
	// StrategyDefault applies the target field default
	StrategyDefault
)

// String returns strategy name
func (s Strategy) String() string {
	switch s {
	case StrategyAssign:
		return "assign"
	case StrategyAssignIfSet:
		return "assignIfSet"
	case StrategyAssignIfNotNil:
		return "assignIfNotNil"
	case StrategyRecurse:
		return "recurse"
	case StrategyRecurseList:
		return "recurseList"
	case StrategyRecurseListIfNotNil:
		return "recurseListIfNotNil"
	case StrategyProduce:
		return "produce"
	case StrategyDefault:
		return "default"
	}
	return "unknown"
}
