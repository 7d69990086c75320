package twocaptcha

import stealth "github.com/anatolykoptev/go-stealth"

// defaultUserAgent is the fallback User-Agent when the profile has none.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// headerOrder is the wire order for the headers built below.
var headerOrder = []string{
	"user-agent",
	"accept",
	"accept-language",
	"accept-encoding",
	"sec-ch-ua",
	"sec-ch-ua-mobile",
	"sec-ch-ua-platform",
}

// requestHeaders returns the headers sent with every API call. The service
// answers in plain text.
func requestHeaders(userAgent string) map[string]string {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	h := map[string]string{
		"user-agent":      userAgent,
		"accept":          "text/plain, */*",
		"accept-language": "en-US,en;q=0.9",
		"accept-encoding": "gzip, deflate, br",
	}
	if ch := stealth.ClientHintsHeaders(userAgent); ch != nil {
		for k, v := range ch {
			h[k] = v
		}
	}
	return h
}
