// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package cache

import (
	"context"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"none needs nothing", Config{Backend: BackendNone}, false},
		{"empty backend", Config{}, false},
		{"memory without ttl", Config{Backend: BackendMemory}, true},
		{"badger", Config{Backend: BackendBadger, TTL: time.Minute}, false},
		{"redis without addr", Config{Backend: BackendRedis, TTL: time.Minute}, true},
		{"redis", Config{Backend: BackendRedis, TTL: time.Minute, RedisAddr: "localhost:6379"}, false},
		{"unknown", Config{Backend: "memcached", TTL: time.Minute}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	none, err := Open(ctx, Config{Backend: BackendNone})
	if err != nil || none != nil {
		t.Errorf("none: store=%v err=%v", none, err)
	}

	mem, err := Open(ctx, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	defer mem.Close()
	if _, ok := mem.(*MemoryStore); !ok {
		t.Errorf("memory backend returned %T", mem)
	}

	cfg := DefaultConfig()
	cfg.Backend = BackendBadger
	bs, err := Open(ctx, cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer bs.Close()
	if _, ok := bs.(*BadgerStore); !ok {
		t.Errorf("badger backend returned %T", bs)
	}

	if _, err := Open(ctx, Config{Backend: "bogus", TTL: time.Minute}); err == nil {
		t.Error("bogus backend accepted")
	}
}
