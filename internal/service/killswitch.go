package service

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

const processorSwitchKey = "gamify:processor:paused"

// ProcessorSwitch is the externally-injected pause toggle for the event
// processor. With redis configured the state is shared across instances;
// without it the switch falls back to per-instance memory, enabled by
// default.
type ProcessorSwitch struct {
	rdb *redis.Client

	mu     sync.Mutex
	paused bool
}

func NewProcessorSwitch(rdb *redis.Client) *ProcessorSwitch {
	return &ProcessorSwitch{rdb: rdb}
}

func (s *ProcessorSwitch) Enabled(ctx context.Context) (bool, error) {
	if s.rdb == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return !s.paused, nil
	}

	_, err := s.rdb.Get(ctx, processorSwitchKey).Result()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

func (s *ProcessorSwitch) Pause(ctx context.Context) error {
	if s.rdb == nil {
		s.mu.Lock()
		s.paused = true
		s.mu.Unlock()
		return nil
	}
	return s.rdb.Set(ctx, processorSwitchKey, "1", 0).Err()
}

func (s *ProcessorSwitch) Resume(ctx context.Context) error {
	if s.rdb == nil {
		s.mu.Lock()
		s.paused = false
		s.mu.Unlock()
		return nil
	}
	return s.rdb.Del(ctx, processorSwitchKey).Err()
}
