package status

// Tier is the coarse classification of an HTTP status code, used to pick the
// badge color for a response. Codes outside the known ranges (informational,
// out-of-spec values like 999) fall to TierServerError.
type Tier int

const (
	TierSuccess Tier = iota
	TierRedirect
	TierClientError
	TierServerError
)

// Classify maps a status code to its display tier.
func Classify(code int) Tier {
	switch {
	case code >= 200 && code < 300:
		return TierSuccess
	case code >= 300 && code < 400:
		return TierRedirect
	case code >= 400 && code < 500:
		return TierClientError
	default:
		return TierServerError
	}
}

func (t Tier) String() string {
	switch t {
	case TierSuccess:
		return "success"
	case TierRedirect:
		return "redirect"
	case TierClientError:
		return "client-error"
	default:
		return "server-error"
	}
}
