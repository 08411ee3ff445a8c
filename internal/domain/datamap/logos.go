package datamap

import (
	"net/url"
	"strings"
)

const logoBase = "https://logo.clearbit.com/"

// LogoDomains is the static ticker -> company domain map for the tracked Portuguese stocks.
var LogoDomains = map[string]string{
	"EDP.LS":  "edp.com",
	"JMT.LS":  "jeronimomartins.com",
	"GALP.LS": "galp.com",
	"BCP.LS":  "millenniumbcp.pt",
	"CTT.LS":  "ctt.pt",
	"NOS.LS":  "nos.pt",
}

// LogoURL returns the static logo of ticker, or "".
func LogoURL(ticker string) string {
	if d, ok := LogoDomains[strings.ToUpper(ticker)]; ok {
		return logoBase + d
	}
	return ""
}

// LogoFromWebsite builds a logo URL from the host of a company website, or "" when it has none.
func LogoFromWebsite(website string) string {
	website = strings.TrimSpace(website)
	if website == "" {
		return ""
	}
	if !strings.Contains(website, "://") {
		website = "https://" + website
	}
	u, err := url.Parse(website)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return logoBase + u.Hostname()
}
