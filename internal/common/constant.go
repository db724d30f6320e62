package common

// AuthorizationHeaderName is the HTTP header carrying the bearer session
// token on requests to protected endpoints.
const AuthorizationHeaderName = "Authorization"
