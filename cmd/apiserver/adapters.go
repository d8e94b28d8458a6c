package main

import (
	"context"
	"fmt"

	appSketch "github.com/turtacn/molsketch/internal/application/sketch"
	"github.com/turtacn/molsketch/internal/infrastructure/database/redis"
)

// Adapters for HealthHandler

type redisHealthAdapter struct {
	client *redis.Client
}

func (a *redisHealthAdapter) Name() string {
	return "redis"
}

func (a *redisHealthAdapter) Check(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// sessionsHealthAdapter reports not ready once the session limit is hit.
type sessionsHealthAdapter struct {
	manager *appSketch.Manager
	limit   int
}

func (a *sessionsHealthAdapter) Name() string {
	return "sessions"
}

func (a *sessionsHealthAdapter) Check(context.Context) error {
	if n := a.manager.Count(); n >= a.limit {
		return fmt.Errorf("session limit reached (%d/%d)", n, a.limit)
	}
	return nil
}

//Personal.AI order the ending
