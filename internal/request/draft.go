package request

import (
	"net/http"
	"strings"

	"github.com/unkn0wn-root/restpad/internal/errdef"
)

// Methods lists the draft's method choices in display order.
var Methods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodPatch,
	http.MethodHead,
	http.MethodOptions,
}

// Draft is the in-progress, user-editable request. Nothing validates it
// until submission.
type Draft struct {
	Method      string
	URL         string
	HeadersText string
	BodyText    string
	UseRelay    bool
}

// AllowsBody reports whether the method carries a request body. GET and HEAD
// never send one; the body field is hidden for them.
func AllowsBody(method string) bool {
	switch strings.ToUpper(strings.TrimSpace(method)) {
	case http.MethodGet, http.MethodHead:
		return false
	}
	return true
}

// MethodIndex returns the position of method in Methods, or zero (GET) when
// the method is unknown.
func MethodIndex(method string) int {
	normalized := strings.ToUpper(strings.TrimSpace(method))
	for i, m := range Methods {
		if m == normalized {
			return i
		}
	}
	return 0
}

// Validate checks the draft is submittable. Only the URL is checked; the
// rest of the draft is best-effort on purpose.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.URL) == "" {
		return errdef.New(errdef.CodeValidate, "request url is empty")
	}
	return nil
}
