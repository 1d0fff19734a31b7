//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/grievance-service/internal/domain"
)

// Публикует GrievanceLocateEvent в стрим бэкфилла и ждёт, пока воркер его заберёт
func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	grievanceID := flag.String("id", "", "Grievance UUID without area")
	group := flag.String("group", "grievance-area-backfill", "Worker consumer group")
	flag.Parse()

	id, err := uuid.Parse(*grievanceID)
	if err != nil {
		log.Fatalf("Invalid -id: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := domain.GrievanceLocateEvent{
		EventID:     uuid.New(),
		GrievanceID: id,
		CreatedAt:   time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	msgID, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamGrievanceLocate,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamGrievanceLocate)
	fmt.Printf("   Message ID: %s\n", msgID)
	fmt.Printf("   Grievance ID: %s\n", event.GrievanceID)

	fmt.Printf("\nWaiting for group %q to deliver the message...\n", *group)

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("Timeout: is the worker running with WORKER_ENABLED=true?")
			return
		case <-ticker.C:
			groups, err := client.XInfoGroups(ctx, domain.StreamGrievanceLocate).Result()
			if err != nil {
				continue
			}
			for _, g := range groups {
				if g.Name != *group {
					continue
				}
				if g.LastDeliveredID >= msgID && g.Pending == 0 {
					fmt.Printf("Delivered and acked (last id %s)\n", g.LastDeliveredID)
					return
				}
			}
		}
	}
}
