package handler

type ContextKey string

var (
	AddressCtxKey ContextKey = "address"
	MyAccountCtx  ContextKey = "myAccount"
	ManagerCtx    ContextKey = "manager"
)
