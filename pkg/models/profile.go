package models

import (
	"net/url"
	"strings"

	"github.com/seenimoa/finassist/pkg/utils"
)

// MaxDescriptionRunes bounds Profile.Description.
const MaxDescriptionRunes = 400

// Profile is company-level descriptive data.
type Profile struct {
	Symbol      string   `json:"symbol"`
	Name        string   `json:"name"`
	Exchange    string   `json:"exchange"`
	Sector      string   `json:"sector"`
	Industry    string   `json:"industry"`
	Country     string   `json:"country"`
	Currency    string   `json:"currency"`
	Website     string   `json:"website"`
	Description string   `json:"description"`
	Employees   *int64   `json:"employees"`
	MarketCap   *float64 `json:"market_cap"`
	Logo        string   `json:"logo"`
	Source      string   `json:"source,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// NewProfile returns the placeholder profile served when no provider knows the symbol.
func NewProfile(symbol string) *Profile {
	return &Profile{
		Symbol:   symbol,
		Name:     utils.BaseSymbol(symbol),
		Sector:   "N/A",
		Industry: "N/A",
		Logo:     LogoURL(symbol, ""),
	}
}

// Usable reports whether a provider supplied at least a company name.
func (p *Profile) Usable() bool {
	return p != nil && strings.TrimSpace(p.Name) != ""
}

// Finish applies the description bound and fills the logo when missing.
func (p *Profile) Finish() {
	p.Description = utils.Truncate(strings.TrimSpace(p.Description), MaxDescriptionRunes)
	if p.Logo == "" {
		p.Logo = LogoURL(p.Symbol, p.Website)
	}
	if p.Sector == "" {
		p.Sector = "N/A"
	}
	if p.Industry == "" {
		p.Industry = "N/A"
	}
}

// LogoURL builds a favicon-service URL from the company website, falling
// back to a table of well-known domains. It returns "" when neither is known.
func LogoURL(symbol, website string) string {
	domain := domainOf(website)
	if domain == "" {
		domain = knownDomains[utils.BaseSymbol(symbol)]
	}
	if domain == "" {
		return ""
	}
	return "https://www.google.com/s2/favicons?sz=128&domain_url=https://" + domain
}

func domainOf(website string) string {
	website = strings.TrimSpace(website)
	if website == "" {
		return ""
	}
	if !strings.Contains(website, "://") {
		website = "https://" + website
	}
	u, err := url.Parse(website)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.Trim(u.Host, "/"), "www.")
}

var knownDomains = map[string]string{
	"RELIANCE": "ril.com", "TCS": "tcs.com", "HDFCBANK": "hdfcbank.com",
	"INFY": "infosys.com", "ICICIBANK": "icicibank.com", "SBIN": "sbi.co.in",
	"BHARTIARTL": "airtel.com", "BAJFINANCE": "bajajfinserv.in",
	"ASIANPAINT": "asianpaints.com", "MARUTI": "marutisuzuki.com",
	"KOTAKBANK": "kotak.com", "LT": "larsentoubro.com", "AXISBANK": "axisbank.com",
	"TITAN": "titancompany.in", "SUNPHARMA": "sunpharma.com", "WIPRO": "wipro.com",
	"HCLTECH": "hcltech.com", "TATAMOTORS": "tatamotors.com", "ONGC": "ongcindia.com",
	"NTPC": "ntpc.co.in", "POWERGRID": "powergridindia.com", "JSWSTEEL": "jsw.in",
	"ADANIENT": "adani.com", "ADANIPORTS": "adaniports.com", "COALINDIA": "coalindia.in",
	"TECHM": "techmahindra.com", "TATASTEEL": "tatasteel.com", "HINDALCO": "hindalco.com",
	"CIPLA": "cipla.com", "DRREDDY": "drreddys.com", "BRITANNIA": "britannia.co.in",
	"APOLLOHOSP": "apollohospitals.com", "SBILIFE": "sbilife.co.in",
	"HEROMOTOCO": "heromotocorp.com", "BPCL": "bharatpetroleum.com",
	"SUZLON": "suzlon.com", "ZOMATO": "zomato.com", "PAYTM": "paytm.com",
	"NYKAA": "nykaa.com", "DLF": "dlf.in", "DMART": "dmartindia.com",
	"IRCTC": "irctc.co.in", "HAL": "hal-india.co.in", "IRFC": "irfc.nic.in",
	"LUPIN": "lupin.com", "AUROPHARMA": "aurobindo.com", "HAVELLS": "havells.com",
	"VOLTAS": "voltas.com", "JUBLFOOD": "jubilantfoodworks.com",
	"ITC": "itcportal.com", "HINDUNILVR": "hul.co.in", "DELHIVERY": "delhivery.com",
	"AAPL": "apple.com", "MSFT": "microsoft.com", "GOOGL": "google.com",
	"GOOG": "google.com", "AMZN": "amazon.com", "META": "meta.com",
	"TSLA": "tesla.com", "NVDA": "nvidia.com", "NFLX": "netflix.com",
	"AMD": "amd.com", "INTC": "intel.com", "JPM": "jpmorganchase.com",
	"BAC": "bankofamerica.com", "V": "visa.com", "WMT": "walmart.com",
	"DIS": "thewaltdisneycompany.com",
}
