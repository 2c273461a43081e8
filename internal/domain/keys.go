package domain

type CtxKey string

const (
	KeyAccountID CtxKey = "AccountID"
	KeyIsAdmin   CtxKey = "IsAdmin"
	KeyRequestID CtxKey = "RequestID"
)
