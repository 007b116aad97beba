package httpx

import (
	"errors"
	"net/http"

	domainauth "github.com/socialgrid/socialgrid/internal/domain/auth"
)

var errForbidden = errors.New("access denied")

// Authorize evaluates a rule against the request's principal and reports
// whether the handler may proceed. Every denial is the same 403 regardless of
// whether a principal was present, which roles it held, or whether the rule
// errored while resolving ownership; distinguishing those cases on the wire
// would tell a probing client which resources exist.
func Authorize(w http.ResponseWriter, r *http.Request, rule domainauth.Rule) bool {
	p, _ := GetPrincipalFromContext(r.Context())
	allowed, err := domainauth.Check(r.Context(), p, rule)
	if err != nil || !allowed {
		WriteError(w, ErrorParams{Code: http.StatusForbidden, ErrCode: "forbidden", Err: errForbidden})
		return false
	}
	return true
}
