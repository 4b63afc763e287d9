// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/waste-analytics/internal/domain"
	"github.com/waste-analytics/internal/repository/cache"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address")
	reason := flag.String("reason", "manual", "reload reason")
	seed := flag.String("seed", "", "JSON dataset file to put into Redis before reload")
	key := flag.String("key", "dataset:waste:records", "Redis key for -seed")
	flag.Parse()

	client := redis.NewClient(&redis.Options{Addr: *redisAddr})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	if *seed != "" {
		data, err := os.ReadFile(*seed)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", *seed, err)
		}
		records, err := domain.DecodeRecords(data)
		if err != nil {
			log.Fatalf("Failed to decode %s: %v", *seed, err)
		}
		cacheRepo := cache.NewCacheRepository(cache.NewRedisFromClient(client, zap.NewNop()))
		if err := cache.PublishDataset(ctx, cacheRepo, *key, records); err != nil {
			log.Fatalf("Failed to seed dataset: %v", err)
		}
		fmt.Printf("Seeded %d records into %s\n", len(records), *key)
	}

	// Последний ID до публикации, чтобы не принять старый ответ
	lastID := "0"
	if last, err := client.XRevRangeN(ctx, domain.StreamDatasetLoaded, "+", "-", 1).Result(); err == nil && len(last) > 0 {
		lastID = last[0].ID
	}

	event := domain.DatasetReloadEvent{
		EventID:     uuid.New(),
		Reason:      *reason,
		RequestedBy: "publish_reload",
		RequestedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	msgID, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamDatasetReload,
		Values: map[string]interface{}{"data": string(data)},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Reload requested\n")
	fmt.Printf("   Stream: %s\n", domain.StreamDatasetReload)
	fmt.Printf("   Message ID: %s\n", msgID)
	fmt.Printf("   Event ID: %s\n", event.EventID)
	fmt.Printf("\nWaiting for %s...\n", domain.StreamDatasetLoaded)

	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		results, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{domain.StreamDatasetLoaded, lastID},
			Count:   10,
			Block:   time.Second,
		}).Result()
		if err != nil {
			continue
		}

		for _, stream := range results {
			for _, msg := range stream.Messages {
				lastID = msg.ID

				dataStr, ok := msg.Values["data"].(string)
				if !ok {
					continue
				}

				var loaded domain.DatasetLoadedEvent
				if err := json.Unmarshal([]byte(dataStr), &loaded); err != nil {
					continue
				}
				if loaded.EventID != event.EventID {
					continue
				}

				pretty, _ := json.MarshalIndent(loaded, "", "  ")
				if loaded.Error != "" {
					fmt.Printf("\nReload failed:\n%s\n", pretty)
					os.Exit(1)
				}
				fmt.Printf("\nDataset reloaded:\n%s\n", pretty)
				return
			}
		}
	}

	fmt.Println("Timeout waiting for response")
	os.Exit(1)
}
