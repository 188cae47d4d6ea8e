package localstore

import (
	"context"

	valkey "github.com/valkey-io/valkey-go"
)

// ValkeyStore implements Store on a Valkey instance, for setups where local
// state should survive the process.
type ValkeyStore struct {
	c valkey.Client
}

func NewValkey(addr, password string) (*ValkeyStore, error) {
	opts := valkey.ClientOption{
		InitAddress: []string{addr},
	}
	if password != "" {
		opts.Username = "default"
		opts.Password = password
	}
	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, err
	}
	return &ValkeyStore{c: client}, nil
}

func (v *ValkeyStore) Get(ctx context.Context, key string) (string, bool) {
	res := v.c.Do(ctx, v.c.B().Get().Key(key).Build())
	if err := res.Error(); err != nil {
		return "", false
	}
	str, err := res.ToString()
	if err != nil {
		return "", false
	}
	return str, true
}

func (v *ValkeyStore) Set(ctx context.Context, key string, val string) error {
	res := v.c.Do(ctx, v.c.B().Set().Key(key).Value(val).Build())
	return res.Error()
}

func (v *ValkeyStore) Delete(ctx context.Context, key string) error {
	res := v.c.Do(ctx, v.c.B().Del().Key(key).Build())
	return res.Error()
}

func (v *ValkeyStore) Close() { v.c.Close() }
