package secret

import (
	"fmt"
	"sync"

	"github.com/zalando/go-keyring"
)

// memKeyring 是并发安全的内存 keyring，语义与 go-keyring 一致（不存在返回 keyring.ErrNotFound）。
type memKeyring struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemKeyring() *memKeyring {
	return &memKeyring{data: make(map[string]string)}
}

func memKey(service, account string) string {
	return fmt.Sprintf("%s\x00%s", service, account)
}

func (m *memKeyring) Get(service, account string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[memKey(service, account)]
	if !ok {
		return "", keyring.ErrNotFound
	}
	return v, nil
}

func (m *memKeyring) Set(service, account, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[memKey(service, account)] = value
	return nil
}

func (m *memKeyring) Delete(service, account string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := memKey(service, account)
	if _, ok := m.data[k]; !ok {
		return keyring.ErrNotFound
	}
	delete(m.data, k)
	return nil
}

// blockingKeyring 在 release 关闭前阻塞所有调用。
type blockingKeyring struct {
	entered chan struct{}
	release chan struct{}
}

func newBlockingKeyring() *blockingKeyring {
	return &blockingKeyring{entered: make(chan struct{}, 16), release: make(chan struct{})}
}

func (b *blockingKeyring) wait() {
	b.entered <- struct{}{}
	<-b.release
}

func (b *blockingKeyring) Get(service, account string) (string, error) {
	b.wait()
	return "late", nil
}

func (b *blockingKeyring) Set(service, account, value string) error {
	b.wait()
	return nil
}

func (b *blockingKeyring) Delete(service, account string) error {
	b.wait()
	return nil
}

// errKeyring 对所有调用返回固定错误。
type errKeyring struct{ err error }

func (e errKeyring) Get(string, string) (string, error) { return "", e.err }
func (e errKeyring) Set(string, string, string) error   { return e.err }
func (e errKeyring) Delete(string, string) error        { return e.err }

// gatedKeyring 在 release 关闭前阻塞 Set，之后写入内存 keyring。
type gatedKeyring struct {
	*memKeyring
	release chan struct{}
}

func (g *gatedKeyring) Set(service, account, value string) error {
	<-g.release
	return g.memKeyring.Set(service, account, value)
}
