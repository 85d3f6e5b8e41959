// Package i18n holds the localized message catalog for deterministic
// assistant replies (canonical bypass answers, confirmation prompts, format
// hints). Model-generated text is never localized here; the prompt carries
// the user's own language through to the provider.
package i18n

import (
	"golang.org/x/text/language"
)

var supported = []language.Tag{
	language.English,
	language.Russian,
	language.Indonesian,
}

var matcher = language.NewMatcher(supported)

// Resolve maps an arbitrary locale string (BCP 47, possibly malformed) to the
// closest supported tag, defaulting to English.
func Resolve(locale string) language.Tag {
	if locale == "" {
		return language.English
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	matched, _, _ := matcher.Match(tag)
	// Matcher can return extended tags like "en-u-rg-ruzzzz"; collapse back to
	// the supported base.
	base, _ := matched.Base()
	for _, s := range supported {
		if sb, _ := s.Base(); sb == base {
			return s
		}
	}
	return language.English
}

// Messages is the per-locale catalog of fixed assistant strings.
type Messages struct {
	EmptyThisWeek    string
	EmptyLastWeek    string
	ConfirmAdd       string // amount, currency, title, budget
	ConfirmAddNoBudg string // amount, currency, title
	BudgetNotFound   string // budget name
	AddFormatHint    string
	AddDone          string // title, amount, currency
	AddFailed        string
	ConfirmRecurring string // title, cadence, amount, currency
	RecurringSaved   string // title
	RecurringFailed  string
	NoCandidates     string
	ProviderDown     string
}

var catalog = map[language.Tag]Messages{
	language.English: {
		EmptyThisWeek:    "You have no recorded expenses this week.",
		EmptyLastWeek:    "You had no recorded expenses last week.",
		ConfirmAdd:       "Add %s %s for %q to the %q budget?",
		ConfirmAddNoBudg: "Add %s %s for %q?",
		BudgetNotFound:   "I couldn't find a budget named %q. Check the name and try again.",
		AddFormatHint:    "I couldn't parse that. Try: \"add 12.50 to Groceries budget\".",
		AddDone:          "Added %q — %s %s.",
		AddFailed:        "Failed to add the transaction, please try again.",
		ConfirmRecurring: "Save %q as a %s recurring expense of about %s %s?",
		RecurringSaved:   "Saved %q as a recurring expense.",
		RecurringFailed:  "Failed to save the recurring rule, please try again.",
		NoCandidates:     "I haven't spotted any recurring expenses to save yet.",
		ProviderDown:     "The assistant is unavailable right now, please try again shortly.",
	},
	language.Russian: {
		EmptyThisWeek:    "На этой неделе расходов не записано.",
		EmptyLastWeek:    "На прошлой неделе расходов не записано.",
		ConfirmAdd:       "Добавить %s %s за %q в бюджет %q?",
		ConfirmAddNoBudg: "Добавить %s %s за %q?",
		BudgetNotFound:   "Бюджет %q не найден. Проверьте название и попробуйте ещё раз.",
		AddFormatHint:    "Не удалось разобрать. Попробуйте: \"добавь 12.50 в бюджет Продукты\".",
		AddDone:          "Добавлено: %q — %s %s.",
		AddFailed:        "Не удалось добавить транзакцию, попробуйте ещё раз.",
		ConfirmRecurring: "Сохранить %q как %s регулярный расход примерно %s %s?",
		RecurringSaved:   "%q сохранено как регулярный расход.",
		RecurringFailed:  "Не удалось сохранить правило, попробуйте ещё раз.",
		NoCandidates:     "Пока не нашёл регулярных расходов для сохранения.",
		ProviderDown:     "Ассистент сейчас недоступен, попробуйте чуть позже.",
	},
	language.Indonesian: {
		EmptyThisWeek:    "Tidak ada pengeluaran tercatat minggu ini.",
		EmptyLastWeek:    "Tidak ada pengeluaran tercatat minggu lalu.",
		ConfirmAdd:       "Tambah %s %s untuk %q ke anggaran %q?",
		ConfirmAddNoBudg: "Tambah %s %s untuk %q?",
		BudgetNotFound:   "Anggaran %q tidak ditemukan. Periksa namanya dan coba lagi.",
		AddFormatHint:    "Tidak bisa dipahami. Coba: \"tambah 12.50 ke anggaran Belanja\".",
		AddDone:          "Ditambahkan: %q — %s %s.",
		AddFailed:        "Gagal menambahkan transaksi, silakan coba lagi.",
		ConfirmRecurring: "Simpan %q sebagai pengeluaran berulang %s sekitar %s %s?",
		RecurringSaved:   "%q disimpan sebagai pengeluaran berulang.",
		RecurringFailed:  "Gagal menyimpan aturan berulang, silakan coba lagi.",
		NoCandidates:     "Belum ada pengeluaran berulang yang bisa disimpan.",
		ProviderDown:     "Asisten sedang tidak tersedia, silakan coba lagi nanti.",
	},
}

// For returns the catalog for a resolved tag.
func For(tag language.Tag) Messages {
	if m, ok := catalog[tag]; ok {
		return m
	}
	return catalog[language.English]
}

// CadenceLabel renders a cadence in the catalog's language.
func CadenceLabel(tag language.Tag, cadence string) string {
	switch tag {
	case language.Russian:
		if cadence == "weekly" {
			return "еженедельный"
		}
		return "ежемесячный"
	case language.Indonesian:
		if cadence == "weekly" {
			return "mingguan"
		}
		return "bulanan"
	default:
		return cadence
	}
}
