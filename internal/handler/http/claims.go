package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

// companyIDFromRequest reads the tenant from the verified token.
func companyIDFromRequest(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	companyID, _ := claims["company_id"].(string)
	return companyID
}

// userIDFromRequest reads the subject from the verified token.
func userIDFromRequest(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	userID, _ := claims["user_id"].(string)
	return userID
}
