package assistant

// Keyword tables for the deterministic recognizers. These are data on
// purpose: adding a locale or category is a table edit, never a control-flow
// change. Locales covered: English, Russian, Indonesian.

// relativeDayKeywords is the single-word date allowlist the local parser
// accepts. Values are day offsets relative to "now".
var relativeDayKeywords = map[string]int{
	"yesterday": -1,
	"today":     0,
	"tomorrow":  1,
	"вчера":     -1,
	"сегодня":   0,
	"завтра":    1,
	"kemarin":   -1,
	"besok":     1,
}

// dateKeywords are date-ish words outside the allowlist. Any of these in the
// input means the phrasing is too free-form for deterministic parsing.
var dateKeywords = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
	"january", "february", "march", "april", "may", "june", "july",
	"august", "september", "october", "november", "december",
	"week", "month", "ago",
	"понедельник", "вторник", "среда", "четверг", "пятница", "суббота", "воскресенье",
	"января", "февраля", "марта", "апреля", "мая", "июня", "июля",
	"августа", "сентября", "октября", "ноября", "декабря",
	"неделю", "месяц", "назад",
	"senin", "selasa", "rabu", "kamis", "jumat", "sabtu", "minggu",
	"lalu",
}

// complexVerbKeywords indicate free-form narration ("I bought coffee for 5")
// that the local parser hands off to the model.
var complexVerbKeywords = []string{
	"bought", "spent", "paid", "received",
	"купил", "купила", "потратил", "потратила", "заплатил", "заплатила", "получил", "получила",
	"membeli", "beli", "menghabiskan", "bayar", "membayar", "menerima", "terima",
}

// conjunctionWords split multi-item inputs ("coffee 5 and taxi 10").
var conjunctionWords = []string{"and", "и", "dan"}

// categoryKeywords map a lowercase title keyword to a display category.
// First match wins; unmatched titles fall back to "Other".
var categoryKeywords = []struct {
	Category string
	Words    []string
}{
	{"Transport", []string{
		"taxi", "uber", "bus", "metro", "train", "fuel", "petrol", "gas", "parking",
		"такси", "метро", "автобус", "бензин", "парковка", "электричка",
		"ojek", "gojek", "grab", "bensin", "parkir", "kereta",
	}},
	{"Food", []string{
		"coffee", "lunch", "dinner", "breakfast", "grocery", "groceries", "restaurant",
		"pizza", "burger", "tea", "food",
		"кофе", "обед", "ужин", "завтрак", "продукты", "ресторан", "еда", "чай",
		"kopi", "makan", "sarapan", "restoran", "makanan", "teh",
	}},
	{"Shopping", []string{
		"shoes", "clothes", "shirt", "jeans", "store", "shop", "mall", "amazon",
		"обувь", "одежда", "магазин", "кроссовки",
		"sepatu", "baju", "toko", "belanja",
	}},
	{"Entertainment", []string{
		"cinema", "movie", "netflix", "spotify", "game", "concert", "theatre",
		"кино", "игра", "концерт", "театр",
		"bioskop", "film", "konser",
	}},
}

// defaultCategory labels titles no keyword matched.
const defaultCategory = "Other"

// intentKeywords are checked in order; the first substring hit wins.
var intentKeywords = []struct {
	Intent Intent
	Words  []string
}{
	{IntentSaveAdvice, []string{
		"how to save", "save money", "saving", "economize", "cut spending",
		"сэконом", "экономить", "копить",
		"hemat", "menabung",
	}},
	{IntentCompareMonths, []string{
		"compare", "than last month", "versus", " vs ",
		"сравн", "чем в прошлом месяце",
		"banding",
	}},
	{IntentBiggestExpenses, []string{
		"biggest", "largest", "top expense", "most expensive", "where did my money",
		"крупнейш", "самые больш", "куда ушли",
		"terbesar", "paling besar",
	}},
	{IntentAnalyzeSpending, []string{
		"analyze", "analysis", "spending", "where do i spend", "breakdown",
		"анализ", "на что я трачу", "трачу",
		"analisis", "pengeluaran",
	}},
}

// periodKeywords are checked in order; the first substring hit wins.
var periodKeywords = []struct {
	Period Period
	Words  []string
}{
	{PeriodLastWeek, []string{
		"last week", "past week", "previous week",
		"прошлой неделе", "прошлую неделю",
		"minggu lalu", "pekan lalu",
	}},
	{PeriodThisWeek, []string{
		"this week", "current week",
		"этой неделе", "эту неделю",
		"minggu ini", "pekan ini",
	}},
	{PeriodLastMonth, []string{
		"last month", "past month", "previous month",
		"прошлом месяце", "прошлый месяц",
		"bulan lalu",
	}},
	{PeriodThisMonth, []string{
		"this month", "current month",
		"этом месяце", "этот месяц",
		"bulan ini",
	}},
}

// addVerbStems mark messages that look like add attempts even when the
// command pattern failed, so the user gets a format hint instead of a model
// call.
var addVerbStems = []string{"add ", "добав", "tambah"}

// budgetWords mark a budget reference in any supported locale.
var budgetWords = []string{"budget", "бюджет", "anggaran"}

// saveRecurringTriggers confirm a save-as-recurring suggestion.
var saveRecurringTriggers = []string{
	"save as recurring", "save recurring", "make it recurring", "yes, save it",
	"сохрани как регулярн", "сделай регулярн", "да, сохрани",
	"simpan berulang", "jadikan berulang", "ya, simpan",
}

// complexityKeywords push provider selection toward the higher-capability
// model.
var complexityKeywords = []string{
	"save", "analyze", "forecast", "plan",
	"сэконом", "анализ", "прогноз", "план",
	"hemat", "analisis", "rencana",
}
