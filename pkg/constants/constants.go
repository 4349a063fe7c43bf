package constants

type ContextKey string

const (
	PoolKey      ContextKey = "pool"
	TxKey        ContextKey = "tx"
	LoggerKey    ContextKey = "logger"
	ParamsKey    ContextKey = "params"
	AppKey       ContextKey = "app"
	PrincipalKey ContextKey = "principal"
	TenantIDKey  ContextKey = "tenantID"
	RequestIDKey ContextKey = "requestID"
)
