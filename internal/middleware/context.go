package middleware

import "context"

// contextKey defines a custom type for context keys to avoid collisions.
type contextKey string

const userContextKey = contextKey("user")

// Authentication methods recorded on UserInfo.
const (
	MethodNone    = ""
	MethodAPIKey  = "api_key"
	MethodBearer  = "bearer"
	MethodSession = "session"
)

// UserInfo describes the caller of the current request.
type UserInfo struct {
	Subject string
	Role    string
	Method  string
}

// Anonymous reports whether the request carried no valid credentials.
func (u *UserInfo) Anonymous() bool {
	return u.Method == MethodNone
}

// GetUserInfo retrieves the user information from the request context.
func GetUserInfo(ctx context.Context) *UserInfo {
	if userInfo, ok := ctx.Value(userContextKey).(*UserInfo); ok {
		return userInfo
	}
	// Return an anonymous user if no user info is found in the context.
	return &UserInfo{Subject: "anonymous", Role: "anonymous"}
}

// SetUserInfo adds the user information to the request context.
func SetUserInfo(ctx context.Context, userInfo *UserInfo) context.Context {
	return context.WithValue(ctx, userContextKey, userInfo)
}
