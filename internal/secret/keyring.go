package secret

// KeyringAPI 是对 OS keyring 的最小抽象，便于测试与跨平台。
// service 对应 keyring 的 service name，account 对应 user/account。
type KeyringAPI interface {
	Get(service, account string) (string, error)
	Set(service, account, value string) error
	Delete(service, account string) error
}

// 默认实现使用 zalando/go-keyring：
// macOS Keychain、Linux Secret Service (D-Bus)、Windows Credential Manager。
// Get/Set/Delete 见 keyring_default.go 与 keyring_windows.go（按平台编译）。
func defaultKeyring() KeyringAPI {
	return &osKeyring{}
}

type osKeyring struct{}

// stripUTF16Padding 去掉 Windows Credential Manager 按 UTF-16LE 存储 ASCII 文本时
// 留下的交错 NUL 字节（"a\x00b\x00"）。只有当每个奇数位都是 NUL、偶数位都不是
// NUL 时才视为该形态；其余值（包括本身含 NUL 的值）原样返回。
func stripUTF16Padding(s string) string {
	if len(s) == 0 || len(s)%2 != 0 {
		return s
	}
	out := make([]byte, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		if s[i] == 0 || s[i+1] != 0 {
			return s
		}
		out = append(out, s[i])
	}
	return string(out)
}
