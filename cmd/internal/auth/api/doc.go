// Package authapi exposes the account and session endpoints: user
// creation and update, login, access-token refresh and refresh-token
// revocation. It owns the translation between service errors and HTTP
// status codes; services below it never see HTTP.
package authapi
