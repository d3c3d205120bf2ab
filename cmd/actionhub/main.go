package main

import (
	"context"
	"os"

	redis "github.com/redis/go-redis/v9"
	cli "github.com/urfave/cli/v3"

	"github.com/stelgo/actionhub/pkg/cluster"
	"github.com/stelgo/actionhub/pkg/executor"
	"github.com/stelgo/actionhub/pkg/log"
	"github.com/stelgo/actionhub/pkg/protocol"
	"github.com/stelgo/actionhub/pkg/queue"
	"github.com/stelgo/actionhub/pkg/registry"
	"github.com/stelgo/actionhub/pkg/savedobjects"
)

const defaultPort = 9044

func main() {
	cmd := &cli.Command{
		Name:                  "actionhub",
		Usage:                 "Run the action execution server with the built-in action types",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "cluster-url",
				Usage:   "Base URL of the search cluster used by the index action",
				Value:   "http://localhost:9200",
				Sources: cli.EnvVars("CLUSTER_URL"),
			},
			&cli.StringFlag{
				Name:    "redis-url",
				Usage:   "Redis connection URL for the saved objects store (optional)",
				Sources: cli.EnvVars("REDIS_URL"),
			},
			&cli.StringFlag{
				Name:    "secrets-key",
				Usage:   "AES key (16/24/32 bytes) sealing action credentials; requires redis-url",
				Sources: cli.EnvVars("SECRETS_KEY"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}

func run(ctx context.Context, command *cli.Command) error {
	log.Setup(command.String("log-level"))
	logger := log.WithModule("api")

	logger.InfoContext(ctx, "Initializing ActionHub")

	clusterClient := cluster.NewHTTPClient(command.String("cluster-url"), logger)

	var (
		objects protocol.SavedObjectsClient
		secrets protocol.SecretsClient
	)

	if redisURL := command.String("redis-url"); redisURL != "" {
		redisOpts, err := redis.ParseURL(redisURL)
		if err != nil {
			return err
		}

		objects = savedobjects.NewRedisClient(redis.NewClient(redisOpts))

		if secretsKey := command.String("secrets-key"); secretsKey != "" {
			store, err := savedobjects.NewEncryptedStore(objects, []byte(secretsKey))
			if err != nil {
				return err
			}

			secrets = store
		}
	}

	executionQueue := queue.NewQueue(logger)

	defer func() {
		if err := executionQueue.Close(); err != nil {
			logger.ErrorContext(ctx, "Failed to close execution queue", "error", err)
		}
	}()

	reg := registry.NewActionTypeRegistry(logger, registry.Deps{
		GetServices: func(context.Context) protocol.Services {
			return protocol.Services{
				Logger:       logger,
				Cluster:      clusterClient,
				SavedObjects: objects,
			}
		},
		TaskManager: executionQueue,
		Secrets:     secrets,
	})

	if err := registry.RegisterBuiltIns(reg); err != nil {
		return err
	}

	execService := executor.NewService(logger, reg)

	if err := executionQueue.Start(ctx, execService.Execute); err != nil {
		return err
	}

	api := NewAPI(logger, reg, execService)

	return api.Start(command.Int("port"))
}
