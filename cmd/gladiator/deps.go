package main

import (
	"log/slog"
	"os"

	"github.com/arenalabs/gladiator/internal/clients/arena"
	"github.com/arenalabs/gladiator/internal/pkg/clock"
	"github.com/arenalabs/gladiator/internal/redis"
	"github.com/arenalabs/gladiator/internal/repositories/save"
)

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func newRepository() (save.Repository, error) {
	client, err := redis.NewClient(redisAddress, nil)
	if err != nil {
		return nil, err
	}
	return save.NewRedisRepository(&save.Config{
		Client: client,
		Clock:  clock.New(),
	})
}

func newArenaClient() (arena.Client, error) {
	return arena.New(&arena.Config{BaseURL: arenaURL})
}
