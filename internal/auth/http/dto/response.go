// Package dto provides data transfer objects for HTTP request and response handling.
package dto

// AccessTokenResponse contains a freshly minted access token.
// The refresh token is never part of a response body, it travels only in the
// HTTP-only cookie.
type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
