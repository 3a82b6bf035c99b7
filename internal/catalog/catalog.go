// Package catalog is the fixed registry of income and expense categories.
// It is built once at init and never mutated.
package catalog

import (
	"strings"

	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

// Entry describes one category code.
type Entry struct {
	Code  string
	Label string
	Icon  string
	Kind  transaction.Type
}

// Other is returned by Resolve for codes the catalog does not know.
var Other = Entry{Code: "other", Label: "Lainnya", Icon: "📦", Kind: transaction.TypeExpense}

var income = []Entry{
	{Code: "salary", Label: "Gaji", Icon: "💼"},
	{Code: "bonus", Label: "Bonus", Icon: "🎁"},
	{Code: "freelance", Label: "Freelance", Icon: "💻"},
	{Code: "investment", Label: "Investasi", Icon: "📈"},
	{Code: "gift", Label: "Hadiah", Icon: "🎀"},
	{Code: "other_income", Label: "Pemasukan Lain", Icon: "💰"},
}

var expense = []Entry{
	{Code: "food", Label: "Makanan & Minuman", Icon: "🍜"},
	{Code: "transport", Label: "Transportasi", Icon: "🛵"},
	{Code: "shopping", Label: "Belanja", Icon: "🛒"},
	{Code: "bills", Label: "Tagihan", Icon: "🧾"},
	{Code: "housing", Label: "Tempat Tinggal", Icon: "🏠"},
	{Code: "health", Label: "Kesehatan", Icon: "💊"},
	{Code: "education", Label: "Pendidikan", Icon: "📚"},
	{Code: "entertainment", Label: "Hiburan", Icon: "🎬"},
	{Code: "charity", Label: "Sedekah & Zakat", Icon: "🤲"},
	{Code: "travel", Label: "Liburan", Icon: "✈️"},
	{Code: "other", Label: "Lainnya", Icon: "📦"},
}

type key struct {
	kind transaction.Type
	code string
}

var (
	byCode  = map[string]Entry{}
	byKind  = map[key]Entry{}
	byLabel = map[string]Entry{}
)

func init() {
	for i := range income {
		income[i].Kind = transaction.TypeIncome
		register(income[i])
	}

	for i := range expense {
		expense[i].Kind = transaction.TypeExpense
		register(expense[i])
	}
}

func register(e Entry) {
	if _, ok := byCode[e.Code]; !ok {
		byCode[e.Code] = e
	}

	byKind[key{kind: e.Kind, code: e.Code}] = e

	if _, ok := byLabel[strings.ToLower(e.Label)]; !ok {
		byLabel[strings.ToLower(e.Label)] = e
	}
}

// Lookup returns the entry for code, or false when the code is unknown.
func Lookup(code string) (Entry, bool) {
	e, ok := byCode[code]
	return e, ok
}

// Resolve is Lookup with the Other fallback. The returned entry keeps the
// requested code so unknown categories stay distinguishable.
func Resolve(code string) Entry {
	if e, ok := byCode[code]; ok {
		return e
	}

	fallback := Other
	fallback.Code = code

	return fallback
}

// Match finds an entry by code or by display label, ignoring case and
// surrounding spaces. Spreadsheet users tend to type labels.
func Match(s string) (Entry, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if e, ok := byCode[s]; ok {
		return e, true
	}

	e, ok := byLabel[s]

	return e, ok
}

// Has reports whether code belongs to the catalog of the given kind.
func Has(kind transaction.Type, code string) bool {
	_, ok := byKind[key{kind: kind, code: code}]
	return ok
}

// Fallback returns the catch-all code for kind, or "" for an unknown kind.
func Fallback(kind transaction.Type) string {
	switch kind {
	case transaction.TypeIncome:
		return "other_income"
	case transaction.TypeExpense:
		return Other.Code
	}

	return ""
}

// Income returns a copy of the income categories in display order.
func Income() []Entry {
	return append([]Entry(nil), income...)
}

// Expense returns a copy of the expense categories in display order.
func Expense() []Entry {
	return append([]Entry(nil), expense...)
}
