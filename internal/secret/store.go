package secret

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/novelpro/novelkey/internal/errors"
)

const (
	// DefaultService 是未配置时使用的 keyring service name。
	DefaultService = "NovelPro"
	// DefaultWorkers 是同时进行的平台调用上限。
	DefaultWorkers = 4
)

const (
	opSet    = "set"
	opGet    = "get"
	opDelete = "delete"
)

// StoreOptions 控制 Store 的依赖与资源上限。
//
// Timeout 是单次调用的超时，0 表示不设超时。超时后调用方得到
// CodeSecretUnavailable，但平台调用无法被打断：Set/Delete 仍可能在超时之后
// 完成写入。设置了 Timeout 时，超时错误只表示"结果未知"，调用方应通过 Get
// 确认实际状态。
type StoreOptions struct {
	Keyring KeyringAPI    // nil 则用 OS keyring
	Workers int           // <=0 则用 DefaultWorkers
	Timeout time.Duration // 见上
	Logger  *slog.Logger  // nil 则丢弃日志
}

// Store 是对平台 secret store 的适配器，所有条目位于同一 service 命名空间下。
//
// Store 不缓存任何值：每次调用都会重新向平台解析 (service, key)。
// 平台调用是阻塞的，统一在有界的 worker 池中执行；调用方的 ctx 结束时立即返回
// CodeSecretUnavailable，正在进行的平台调用不会被打断，其结果被丢弃。
type Store struct {
	service string
	kr      KeyringAPI
	sem     *semaphore.Weighted
	timeout time.Duration
	logger  *slog.Logger
}

// NewStore 创建绑定到 service 的 Store。service 不能为空。
func NewStore(service string, opts StoreOptions) (*Store, *errors.XError) {
	if service == "" {
		return nil, errors.New(errors.CodeCfgInvalid, "secret service name is empty", nil)
	}
	if opts.Timeout < 0 {
		return nil, errors.New(errors.CodeCfgInvalid, "secret timeout must not be negative", map[string]any{"timeout": opts.Timeout.String()})
	}
	kr := opts.Keyring
	if kr == nil {
		kr = defaultKeyring()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		service: service,
		kr:      kr,
		sem:     semaphore.NewWeighted(int64(workers)),
		timeout: opts.Timeout,
		logger:  logger,
	}, nil
}

// Service 返回 Store 的命名空间。
func (s *Store) Service() string { return s.service }

// Set 写入 key 对应的值，覆盖已有值。value 可以为空字符串。
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, xe := s.do(ctx, opSet, key, func() (string, error) {
		return "", s.kr.Set(s.service, key, value)
	})
	if xe != nil {
		return xe
	}
	return nil
}

// Get 读取 key 的当前值；条目不存在时返回 CodeSecretNotFound，而不是空值。
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	val, xe := s.do(ctx, opGet, key, func() (string, error) {
		return s.kr.Get(s.service, key)
	})
	if xe != nil {
		return "", xe
	}
	return val, nil
}

// Delete 删除 key 对应的条目。删除不存在的条目返回 CodeSecretNotFound（非幂等）。
func (s *Store) Delete(ctx context.Context, key string) error {
	_, xe := s.do(ctx, opDelete, key, func() (string, error) {
		return "", s.kr.Delete(s.service, key)
	})
	if xe != nil {
		return xe
	}
	return nil
}

type callResult struct {
	val string
	err error
}

func (s *Store) do(ctx context.Context, op, key string, call func() (string, error)) (string, *errors.XError) {
	if ctx == nil {
		ctx = context.Background()
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := s.sem.Acquire(ctx, 1); err != nil {
		xe := classify(op, s.service, key, err)
		s.log(op, key, start, xe)
		return "", xe
	}

	done := make(chan callResult, 1)
	go func() {
		// 槽位在平台调用真正返回后才释放，被放弃的调用仍占用池容量。
		defer s.sem.Release(1)
		val, err := call()
		done <- callResult{val: val, err: err}
	}()

	var xe *errors.XError
	var val string
	select {
	case r := <-done:
		val = r.val
		xe = classify(op, s.service, key, r.err)
	case <-ctx.Done():
		xe = classify(op, s.service, key, ctx.Err())
	}
	s.log(op, key, start, xe)
	if xe != nil {
		return "", xe
	}
	return val, nil
}

func (s *Store) log(op, key string, start time.Time, xe *errors.XError) {
	attrs := []any{"op", op, "service", s.service, "key", key, "duration", time.Since(start)}
	if xe != nil {
		s.logger.Info("secret store call failed", append(attrs, "code", xe.Code)...)
		return
	}
	s.logger.Info("secret store call", attrs...)
}
