// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/route-service/internal/domain"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	routeID := flag.Int64("route", 1, "Route ID to recompute")
	userID := flag.Int64("user", 1, "Requesting user ID")
	group := flag.String("group", "route-metrics-workers", "Worker consumer group")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := domain.RouteMetricsRequestedEvent{
		RouteID:     *routeID,
		RequestedBy: *userID,
		RequestedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Публикация в стрим
	msgID, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamRouteMetrics,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("✅ Event published successfully!\n")
	fmt.Printf("   Stream: %s\n", domain.StreamRouteMetrics)
	fmt.Printf("   Message ID: %s\n", msgID)
	fmt.Printf("   Route ID: %d\n", event.RouteID)

	// Воркер подтверждает сообщение после пересчета: ждем, пока оно не уйдет из pending
	fmt.Printf("\n⏳ Waiting for worker group %q to ack...\n", *group)

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("❌ Timeout waiting for ack")
			return
		case <-ticker.C:
			groups, err := client.XInfoGroups(ctx, domain.StreamRouteMetrics).Result()
			if err != nil {
				continue
			}
			for _, g := range groups {
				if g.Name != *group || g.LastDeliveredID < msgID {
					continue
				}
				pending, err := client.XPendingExt(ctx, &redis.XPendingExtArgs{
					Stream: domain.StreamRouteMetrics,
					Group:  *group,
					Start:  msgID,
					End:    msgID,
					Count:  1,
				}).Result()
				if err != nil {
					continue
				}
				if len(pending) == 0 {
					fmt.Printf("\n✅ Message %s processed and acked\n", msgID)
					return
				}
			}
		}
	}
}
