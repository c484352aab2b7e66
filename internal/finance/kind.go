package finance

import "strings"

// Kind classifies a transaction.
type Kind string

const (
	KindIncome  Kind = "INCOME"
	KindExpense Kind = "EXPENSE"
	KindSaving  Kind = "SAVING"
)

// ParseKind accepts any casing and returns the canonical upper-case kind.
func ParseKind(raw string) (Kind, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if normalized == "" {
		return "", newValidationError("type", "transaction type is required")
	}

	switch kind := Kind(normalized); kind {
	case KindIncome, KindExpense, KindSaving:
		return kind, nil
	default:
		return "", newValidationError("type", "invalid transaction type: %s", raw)
	}
}

func (k Kind) IsIncome() bool  { return k == KindIncome }
func (k Kind) IsExpense() bool { return k == KindExpense }
func (k Kind) IsSaving() bool  { return k == KindSaving }

func (k Kind) String() string {
	return string(k)
}
