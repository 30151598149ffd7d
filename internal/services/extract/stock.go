package extract

import "regexp"

var stockTrigger = regexp.MustCompile(`\b(?:stocks?|shares|share price|ticker|nasdaq|nyse)\b`)

var tickerPattern = regexp.MustCompile(`\b[A-Z]{2,5}\b`)

type company struct {
	pattern *regexp.Regexp
	symbol  string
}

func companyEntry(name, symbol string) company {
	return company{
		pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`),
		symbol:  symbol,
	}
}

// companies is ordered so lookups are deterministic
var companies = []company{
	companyEntry("apple", "AAPL"),
	companyEntry("tesla", "TSLA"),
	companyEntry("microsoft", "MSFT"),
	companyEntry("nvidia", "NVDA"),
	companyEntry("google", "GOOGL"),
	companyEntry("alphabet", "GOOGL"),
	companyEntry("amazon", "AMZN"),
	companyEntry("meta", "META"),
	companyEntry("facebook", "META"),
	companyEntry("netflix", "NFLX"),
	companyEntry("intel", "INTC"),
	companyEntry("amd", "AMD"),
	companyEntry("ibm", "IBM"),
	companyEntry("oracle", "ORCL"),
	companyEntry("salesforce", "CRM"),
	companyEntry("adobe", "ADBE"),
	companyEntry("paypal", "PYPL"),
	companyEntry("uber", "UBER"),
	companyEntry("disney", "DIS"),
	companyEntry("walmart", "WMT"),
}

var knownTickers = func() map[string]struct{} {
	set := wordSet("SPY", "QQQ", "JPM", "BAC", "XOM", "JNJ", "PFE", "KO", "PLTR", "COIN", "ROKU", "SHOP")
	for _, c := range companies {
		set[c.symbol] = struct{}{}
	}
	return set
}()

// notTickers are upper-case tokens that commonly appear in questions but are
// not equity symbols. Coin symbols are listed so crypto queries fall through.
var notTickers = wordSet(
	"AM", "AN", "AS", "AT", "BE", "BY", "DO", "GO", "HE", "IF", "IN", "IS", "IT", "ME", "MY",
	"NO", "OF", "OK", "ON", "OR", "SO", "TO", "UP", "US", "WE",
	"AND", "ARE", "BUT", "CAN", "FOR", "HOW", "NOT", "THE", "WHO", "WHY", "YOU", "NOW", "NEW",
	"WHAT", "WHEN", "THAT", "THIS", "WITH", "TODAY", "PRICE", "STOCK", "NEWS",
	"USA", "USD", "EUR", "GBP", "CEO", "CFO", "IPO", "ETF", "API", "AI", "FAQ", "PM",
	"BTC", "ETH",
)

func tickerCandidates(raw string) []string {
	var out []string
	for _, tok := range tickerPattern.FindAllString(raw, -1) {
		if _, skip := notTickers[tok]; skip {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func matchStock(lower, raw string) bool {
	if stockTrigger.MatchString(lower) {
		return true
	}
	for _, tok := range tickerCandidates(raw) {
		if _, ok := knownTickers[tok]; ok {
			return true
		}
	}
	for _, c := range companies {
		if c.pattern.MatchString(lower) {
			return true
		}
	}
	return false
}

// extractStock prefers an upper-case ticker written in the raw text, known
// symbols first, and only then consults the company name table.
func extractStock(lower, raw string) (Entity, bool) {
	candidates := tickerCandidates(raw)
	for _, tok := range candidates {
		if _, ok := knownTickers[tok]; ok {
			return Entity{Symbol: tok}, true
		}
	}
	if len(candidates) > 0 {
		return Entity{Symbol: candidates[0]}, true
	}
	for _, c := range companies {
		if c.pattern.MatchString(lower) {
			return Entity{Symbol: c.symbol}, true
		}
	}
	return Entity{}, false
}
