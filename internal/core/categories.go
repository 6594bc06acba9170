package core

// Category vocabularies, one per transaction kind. The UI constrains selection
// to these lists; the store still validates before persisting so a malformed
// request cannot slip an arbitrary label into the ledger.
var (
	CreditCategories = []string{
		"Salary",
		"Freelance Income",
		"Investment Return",
		"Gift Received",
		"Cashback / Refund",
		"Other Credit",
	}

	ExpenseCategories = []string{
		"Food & Dining",
		"Rent / Accommodation",
		"Travel / Commute",
		"Entertainment / Subscriptions",
		"Shopping",
		"Bills & Utilities",
		"Health / Fitness",
		"Education",
		"Other Expense",
	}
)

// CategoriesFor returns the vocabulary for the given kind, nil for an
// unknown kind.
func CategoriesFor(k Kind) []string {
	switch k {
	case Credit:
		return CreditCategories
	case Expense:
		return ExpenseCategories
	default:
		return nil
	}
}

func CategoryAllowed(k Kind, category string) bool {
	for _, c := range CategoriesFor(k) {
		if c == category {
			return true
		}
	}
	return false
}
