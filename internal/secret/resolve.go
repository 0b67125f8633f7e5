package secret

import (
	"context"
	"strings"

	"github.com/novelpro/novelkey/internal/errors"
)

const keyringPrefix = "keyring:"

// Options 控制 secret 引用的解析行为。
type Options struct {
	AllowPlaintext bool       // 是否允许明文（默认 false）
	Service        string     // keyring service name（空则用 DefaultService）
	Keyring        KeyringAPI // 可注入的 keyring 实现（nil 则用默认）
}

// Resolve 解析配置中的 secret 值：
//  1. keyring:xxx → 从 keyring 读取
//  2. 否则若为明文且允许明文 → 直接返回
//  3. 否则报错
func Resolve(ctx context.Context, raw string, opts Options) (string, *errors.XError) {
	if strings.HasPrefix(raw, keyringPrefix) {
		key := strings.TrimPrefix(raw, keyringPrefix)
		if key == "" {
			return "", errors.New(errors.CodeCfgInvalid, "keyring reference has no key", map[string]any{"ref": raw})
		}
		service := opts.Service
		if service == "" {
			service = DefaultService
		}
		st, xe := NewStore(service, StoreOptions{Keyring: opts.Keyring, Workers: 1})
		if xe != nil {
			return "", xe
		}
		val, err := st.Get(ctx, key)
		if err != nil {
			return "", errors.AsOrWrap(err)
		}
		return val, nil
	}
	if opts.AllowPlaintext {
		return raw, nil
	}
	return "", errors.New(errors.CodeCfgInvalid, "plaintext secret not allowed; use keyring: reference or enable allow_plaintext_token", nil)
}

// IsKeyringRef 判断值是否为 keyring 引用。
func IsKeyringRef(s string) bool {
	return strings.HasPrefix(s, keyringPrefix)
}
