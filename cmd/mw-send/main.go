// Command mw-send injects items into a multiworld room and can watch the
// room's activity. It is a testing tool for running rooms.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/jwebster45206/itemshuffle/internal/multiworld"
	"github.com/jwebster45206/itemshuffle/pkg/items"
	"github.com/redis/go-redis/v9"
)

func main() {
	redisURL := flag.String("redis", getEnv("REDIS_URL", "redis://localhost:6379/0"), "Redis URL")
	room := flag.String("room", "", "multiworld room (required)")
	to := flag.Uint("to", 0, "recipient player, 0 sends to everyone")
	from := flag.Uint("from", 0, "player the item comes from")
	item := flag.String("item", "", "item id to send, e.g. 0x60")
	watch := flag.Bool("watch", false, "print room events until interrupted")
	reset := flag.Bool("reset", false, "delete every key of the room")
	flag.Parse()

	if *room == "" {
		fmt.Fprintln(os.Stderr, "-room is required")
		flag.Usage()
		os.Exit(2)
	}

	redisOpts, err := redis.ParseURL(*redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}
	client := redis.NewClient(redisOpts)
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	relay := multiworld.NewRelay(client, logger)

	if *reset {
		if err := relay.Reset(ctx, *room); err != nil {
			log.Fatal("Failed to reset room:", err)
		}
		fmt.Printf("Room %s reset\n", *room)
	}

	// Subscribe before sending so the watcher sees our own item.
	var sub *multiworld.Subscription
	if *watch {
		if sub, err = relay.Subscribe(ctx, *room); err != nil {
			log.Fatal("Failed to watch room:", err)
		}
		defer sub.Close()
	}

	if *item != "" {
		if *to > 255 || *from > 255 {
			log.Fatal("Players must be between 0 and 255")
		}
		id, err := strconv.ParseUint(*item, 0, 16)
		if err != nil {
			log.Fatalf("Invalid item %q: %v", *item, err)
		}

		n, err := relay.Send(ctx, *room, uint8(*to), multiworld.Delivery{From: uint8(*from), Item: uint16(id)})
		if err != nil {
			log.Fatal("Failed to send item:", err)
		}
		fmt.Printf("Sent %s to %d inbox(es)\n", itemName(uint16(id)), n)
	}

	players, err := relay.Players(ctx, *room)
	if err != nil {
		log.Fatal("Failed to list players:", err)
	}
	fmt.Printf("\nRoom %s players:\n", *room)
	for _, p := range players {
		pending, err := relay.Pending(ctx, *room, p)
		if err != nil {
			log.Fatal("Failed to read inbox:", err)
		}
		fmt.Printf("  player %d: %d pending\n", p, pending)
	}

	if sub == nil {
		return
	}
	fmt.Println("\nWatching room events, Ctrl+C to stop...")
	for ev := range sub.Events() {
		switch ev.Type {
		case multiworld.EventPlayerJoined:
			fmt.Printf("player %d joined\n", ev.From)
		default:
			fmt.Printf("%s: %s from player %d to player %d\n", ev.Type, itemName(ev.Item), ev.From, ev.To)
		}
	}
}

func itemName(id uint16) string {
	if row := items.Lookup(items.ID(id)); row != nil {
		return row.Name
	}
	return fmt.Sprintf("item 0x%02X", id)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
