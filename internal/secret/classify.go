package secret

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/novelpro/novelkey/internal/errors"
)

// 平台错误文本片段（小写）。go-keyring 只为 not-found / unsupported / too-big
// 提供哨兵错误，其余只能按消息文本归类；未命中的一律归为 CodeSecretFailed，
// 原始文本始终保留在 cause 中。
var (
	accessDeniedHints = []string{
		"permission denied",
		"access denied",
		"access is denied",
		"accessdenied",
		"not authorized",
		"user canceled",
		"user cancelled",
		"prompt dismissed",
		"authorization failed",
	}
	unavailableHints = []string{
		"org.freedesktop.dbus.error",
		"org.freedesktop.secrets",
		"dbus",
		"secret service",
		"no such interface",
		"connection refused",
		"interaction is not allowed",
		"keychain could not be found",
		"collection is locked",
		"executable file not found",
	}
)

// classify 将平台错误映射为稳定错误码。
func classify(op, service, key string, err error) *errors.XError {
	if err == nil {
		return nil
	}
	details := map[string]any{"op": op, "service": service, "key": key}

	switch {
	case stderrors.Is(err, keyring.ErrNotFound):
		return errors.Wrap(errors.CodeSecretNotFound, "secret not found", details, err)
	case stderrors.Is(err, keyring.ErrUnsupportedPlatform):
		return errors.Wrap(errors.CodeSecretUnavailable, "secret store unavailable on this platform", details, err)
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return errors.Wrap(errors.CodeSecretUnavailable, "secret store did not respond", details, err)
	case stderrors.Is(err, keyring.ErrSetDataTooBig):
		return errors.Wrap(errors.CodeSecretFailed, "secret store rejected value", details, err)
	}

	msg := strings.ToLower(err.Error())
	if containsAny(msg, accessDeniedHints) {
		return errors.Wrap(errors.CodeSecretAccessDenied, "secret store denied access", details, err)
	}
	if containsAny(msg, unavailableHints) {
		return errors.Wrap(errors.CodeSecretUnavailable, "secret store unavailable", details, err)
	}
	return errors.Wrap(errors.CodeSecretFailed, op+" failed", details, err)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
