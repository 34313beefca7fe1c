package auth

import (
	"net/http"
)

type Service interface {
	Access(next http.HandlerFunc) http.HandlerFunc
	SignOut(accessToken string, secure bool) (*http.Cookie, *http.Cookie, error)
}
