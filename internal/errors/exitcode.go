package errors

// ExitCode 是进程退出码（稳定契约）。
type ExitCode int

const (
	ExitOK ExitCode = 0
	// 2: 参数/配置错误
	ExitConfig ExitCode = 2
	// 3: 条目不存在
	ExitNotFound ExitCode = 3
	// 4: 平台拒绝访问
	ExitAccessDenied ExitCode = 4
	// 5: 平台 secret store 不可用（含超时/取消）
	ExitUnavailable ExitCode = 5
	// 6: 平台拒绝写入/删除等其他失败
	ExitSecretFailed ExitCode = 6
	// 10: 内部错误
	ExitInternal ExitCode = 10
)

func ExitCodeFor(code Code) ExitCode {
	switch code {
	case CodeCfgNotFound, CodeCfgInvalid:
		return ExitConfig
	case CodeSecretNotFound:
		return ExitNotFound
	case CodeSecretAccessDenied:
		return ExitAccessDenied
	case CodeSecretUnavailable:
		return ExitUnavailable
	case CodeSecretFailed:
		return ExitSecretFailed
	case CodeInternal:
		fallthrough
	default:
		return ExitInternal
	}
}
