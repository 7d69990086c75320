package twocaptcha

import (
	"net/url"
	"strings"
)

const (
	submitPath = "/in.php"
	resultPath = "/res.php"

	methodUserRecaptcha = "userrecaptcha"

	actionGet        = "get"
	actionBalance    = "getbalance"
	actionReportGood = "reportgood"
	actionReportBad  = "reportbad"
)

// endpointURL joins the base URL, path and encoded query.
func endpointURL(base, path string, q url.Values) string {
	return strings.TrimRight(base, "/") + path + "?" + q.Encode()
}

// submitURL builds the in.php call for a challenge. Proxy fields are only
// added when the request asks for them and a proxy is configured.
func submitURL(base, apiKey string, req ChallengeRequest, proxy *ProxyConfig) string {
	q := url.Values{
		"key":       {apiKey},
		"method":    {methodUserRecaptcha},
		"googlekey": {req.SiteKey},
		"pageurl":   {req.PageURL},
	}
	if req.UseProxyForSolve && proxy != nil {
		q.Set("proxy", proxy.serviceAddr())
		q.Set("proxytype", string(proxy.Kind))
	}
	return endpointURL(base, submitPath, q)
}

func resultURL(base, apiKey, action, ticketID string) string {
	q := url.Values{
		"key":    {apiKey},
		"action": {action},
	}
	if ticketID != "" {
		q.Set("id", ticketID)
	}
	return endpointURL(base, resultPath, q)
}
