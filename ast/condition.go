package ast

// CompareOp is a WHERE comparison operator.
type CompareOp int

const (
	OpEq CompareOp = iota
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpIsNull
	OpIsNotNull
)

func (o CompareOp) String() string {
	switch o {
	case OpEq:
		return "="
	case OpNeq:
		return "<>"
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	case OpIsNull:
		return "IS NULL"
	case OpIsNotNull:
		return "IS NOT NULL"
	default:
		return "?"
	}
}

// ConditionKind tags the variant held by a WhereCondition.
type ConditionKind int

const (
	CondComparison ConditionKind = iota
	CondFunctionCall
	CondPathPropertyRef
	CondAnd
	CondOr
	CondNot
	CondGroup
)

// WhereCondition is the recursive sum described for WHERE expressions:
// comparisons, function calls, path-property references, logical
// AND/OR/NOT, and parenthesized grouping. Only the fields matching Kind are
// populated.
type WhereCondition struct {
	Kind ConditionKind

	// CondComparison
	Left  *PropertyValue
	Op    CompareOp
	Right *PropertyValue

	// CondFunctionCall / CondPathPropertyRef
	Call *FunctionCall
	Ref  *PropertyValue

	// CondAnd / CondOr: exactly two operands
	// CondNot / CondGroup: exactly one operand (Operands[0])
	Operands []WhereCondition

	Span Span
}
