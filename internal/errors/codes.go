package errors

// Code 是稳定错误码（字符串），供 AI/agent 与程序判断。
// 只增不改、不复用旧含义。
type Code string

const (
	// Config / args
	CodeCfgNotFound Code = "NOVELKEY_CFG_NOT_FOUND"
	CodeCfgInvalid  Code = "NOVELKEY_CFG_INVALID"

	// Secret store
	CodeSecretNotFound     Code = "NOVELKEY_SECRET_NOT_FOUND"
	CodeSecretAccessDenied Code = "NOVELKEY_SECRET_ACCESS_DENIED"
	CodeSecretUnavailable  Code = "NOVELKEY_SECRET_UNAVAILABLE"
	CodeSecretFailed       Code = "NOVELKEY_SECRET_FAILED"

	// Internal
	CodeInternal Code = "NOVELKEY_INTERNAL"
)

func AllCodes() []Code {
	return []Code{
		CodeCfgNotFound,
		CodeCfgInvalid,
		CodeSecretNotFound,
		CodeSecretAccessDenied,
		CodeSecretUnavailable,
		CodeSecretFailed,
		CodeInternal,
	}
}
