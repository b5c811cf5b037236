// Package cachetest runs cache.RedisStore against an in-process fake Redis
// installed as a go-redis hook, so tests never open a network connection.
package cachetest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"carconnect/internal/adapters/cache"

	"github.com/redis/go-redis/v9"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// Server answers PING, GET, SET (with EX/PX) and DEL from memory
type Server struct {
	mu      sync.Mutex
	entries map[string]entry
	offset  time.Duration
}

// NewServer creates an empty fake server
func NewServer() *Server {
	return &Server{entries: make(map[string]entry)}
}

// New returns a RedisStore backed by a fresh fake server
func New() *cache.RedisStore {
	return cache.NewRedisStoreFromClient(NewServer().Client())
}

// Client returns a go-redis client whose commands are served by s
func (s *Server) Client() *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: "cachetest.invalid:6379"})
	client.AddHook(s)
	return client
}

// Advance moves the server clock forward so TTLs can expire
func (s *Server) Advance(d time.Duration) {
	s.mu.Lock()
	s.offset += d
	s.mu.Unlock()
}

// Keys returns the number of live keys
func (s *Server) Keys() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.entries {
		if _, ok := s.lookup(k); ok {
			n++
		}
	}
	return n
}

func (s *Server) now() time.Time {
	return time.Now().Add(s.offset)
}

func (s *Server) lookup(key string) (entry, bool) {
	e, ok := s.entries[key]
	if !ok {
		return entry{}, false
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		delete(s.entries, key)
		return entry{}, false
	}
	return e, true
}

func (s *Server) DialHook(next redis.DialHook) redis.DialHook { return next }

func (s *Server) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		for _, cmd := range cmds {
			cmd.SetErr(s.process(cmd))
		}
		return nil
	}
}

func (s *Server) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		return s.process(cmd)
	}
}

func (s *Server) process(cmd redis.Cmder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	args := cmd.Args()
	switch cmd.Name() {
	case "ping":
		cmd.(*redis.StatusCmd).SetVal("PONG")

	case "get":
		e, ok := s.lookup(fmt.Sprint(args[1]))
		if !ok {
			return redis.Nil
		}
		cmd.(*redis.StringCmd).SetVal(e.value)

	case "set":
		e := entry{value: toString(args[2])}
		for i := 3; i+1 < len(args); i += 2 {
			n, _ := args[i+1].(int64)
			switch strings.ToLower(fmt.Sprint(args[i])) {
			case "ex":
				e.expiresAt = s.now().Add(time.Duration(n) * time.Second)
			case "px":
				e.expiresAt = s.now().Add(time.Duration(n) * time.Millisecond)
			}
		}
		s.entries[fmt.Sprint(args[1])] = e
		cmd.(*redis.StatusCmd).SetVal("OK")

	case "del":
		var removed int64
		for _, k := range args[1:] {
			if _, ok := s.lookup(fmt.Sprint(k)); ok {
				delete(s.entries, fmt.Sprint(k))
				removed++
			}
		}
		cmd.(*redis.IntCmd).SetVal(removed)

	default:
		return fmt.Errorf("cachetest: unsupported command %q", cmd.Name())
	}
	return nil
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
