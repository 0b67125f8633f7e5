package invoke

import (
	"context"
	"encoding/json"

	"github.com/novelpro/novelkey/internal/errors"
)

const (
	CmdSaveKey   = "save_key"
	CmdGetKey    = "get_key"
	CmdDeleteKey = "delete_key"
)

// SecretStore 是 secret 命令依赖的最小能力，由 *secret.Store 实现。
type SecretStore interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// 字段用指针区分“缺失”与“空字符串”：空 key/value 会原样转发给平台。
type saveKeyArgs struct {
	Key   *string `json:"key"`
	Value *string `json:"value"`
}

type keyArgs struct {
	Key *string `json:"key"`
}

var (
	keyParam   = Param{Name: "key", Description: "Credential key within the service namespace", Required: true}
	valueParam = Param{Name: "value", Description: "Secret value to store", Required: true}
)

// RegisterSecretCommands 注册 save_key / get_key / delete_key。
func RegisterSecretCommands(d *Dispatcher, st SecretStore) {
	d.Register(Command{
		Name:        CmdSaveKey,
		Description: "Save a secret to the OS credential store, replacing any existing value",
		Params:      []Param{keyParam, valueParam},
	}, func(ctx context.Context, raw json.RawMessage) (any, error) {
		var args saveKeyArgs
		if err := decodeArgs(raw, &args); err != nil {
			return nil, err
		}
		if args.Key == nil {
			return nil, missingArg("key")
		}
		if args.Value == nil {
			return nil, missingArg("value")
		}
		if err := st.Set(ctx, *args.Key, *args.Value); err != nil {
			return nil, err
		}
		return nil, nil
	})

	d.Register(Command{
		Name:        CmdGetKey,
		Description: "Read a secret from the OS credential store",
		Params:      []Param{keyParam},
	}, func(ctx context.Context, raw json.RawMessage) (any, error) {
		key, err := decodeKey(raw)
		if err != nil {
			return nil, err
		}
		val, err := st.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		return val, nil
	})

	d.Register(Command{
		Name:        CmdDeleteKey,
		Description: "Delete a secret from the OS credential store; fails if it does not exist",
		Params:      []Param{keyParam},
	}, func(ctx context.Context, raw json.RawMessage) (any, error) {
		key, err := decodeKey(raw)
		if err != nil {
			return nil, err
		}
		if err := st.Delete(ctx, key); err != nil {
			return nil, err
		}
		return nil, nil
	})
}

func decodeKey(raw json.RawMessage) (string, error) {
	var args keyArgs
	if err := decodeArgs(raw, &args); err != nil {
		return "", err
	}
	if args.Key == nil {
		return "", missingArg("key")
	}
	return *args.Key, nil
}

func missingArg(name string) *errors.XError {
	return errors.New(errors.CodeCfgInvalid, "missing argument: "+name, map[string]any{"argument": name})
}
