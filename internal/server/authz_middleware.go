package server

import (
	"net/http"
	"strings"

	"github.com/jacksonlee411/medcover-console/internal/routing"
	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
	"github.com/jacksonlee411/medcover-console/pkg/authz"
	"github.com/jacksonlee411/medcover-console/pkg/logger"
)

type authorizer interface {
	Authorize(subject string, object string, action string) (allowed bool, enforced bool, err error)
}

// withAuthz checks the console role against the route's requirement. Denials in
// shadow mode are logged and let through.
func withAuthz(classifier *routing.Classifier, a authorizer, subject string, log *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a == nil {
			next.ServeHTTP(w, r)
			return
		}
		object, action, shouldCheck := authzRequirementForRoute(r.Method, r.URL.Path)
		if !shouldCheck {
			next.ServeHTTP(w, r)
			return
		}
		rc := routing.RouteClassUI
		if classifier != nil {
			rc = classifier.Classify(r.URL.Path)
		}

		allowed, enforced, err := a.Authorize(subject, object, action)
		if err != nil {
			routing.WriteError(w, r, rc, http.StatusInternalServerError, "authz_error", "authz error")
			return
		}
		if !allowed {
			if enforced {
				routing.WriteError(w, r, rc, http.StatusForbidden, "forbidden", "forbidden")
				return
			}
			log.Warn().Str("subject", subject).Str("object", object).Str("action", action).Msg("authz shadow deny")
		}
		next.ServeHTTP(w, r)
	})
}

// authzRequirementForRoute maps a console route to its policy object and action.
// Opening a create, edit or delete dialog counts as a write.
func authzRequirementForRoute(method string, path string) (object string, action string, ok bool) {
	switch path {
	case "/app/reports/billing", "/app/reports/billing.csv":
		return authz.ObjectReportsBilling, authz.ActionRead, true
	case "/app/state", "/app/notifications", "/app/modal/close":
		return "", "", false
	}

	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) < 2 || segs[0] != "app" {
		return "", "", false
	}
	section, known := types.ParseSection(segs[1])
	if !known {
		return "", "", false
	}
	object = authz.ObjectForSection(string(section))
	if method == http.MethodPost {
		return object, authz.ActionWrite, true
	}
	if len(segs) >= 3 {
		switch segs[len(segs)-1] {
		case "new", "edit", "delete":
			return object, authz.ActionWrite, true
		}
	}
	return object, authz.ActionRead, true
}
