// Package multiworld relays items between the worlds of a multiworld room
// through Redis. Each player owns an inbox list; the progress of every
// player is kept in a hash so progressive items can be resolved against the
// owner's world; room activity is broadcast over pub/sub.
package multiworld

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/jwebster45206/itemshuffle/pkg/items"
	"github.com/jwebster45206/itemshuffle/pkg/override"
	"github.com/redis/go-redis/v9"
)

var ErrInvalidPlayer = errors.New("invalid player")

// Delivery is one item waiting in a player's inbox.
type Delivery struct {
	From uint8  `json:"from"`
	Item uint16 `json:"item"`
	// Key is the packed location key the item was found at, 0 for items
	// injected by tools.
	Key uint64 `json:"key,omitempty"`
}

func inboxKey(room string, player uint8) string {
	return fmt.Sprintf("mw:%s:inbox:%d", room, player)
}

func progressKey(room string, player uint8) string {
	return fmt.Sprintf("mw:%s:progress:%d", room, player)
}

func playersKey(room string) string {
	return fmt.Sprintf("mw:%s:players", room)
}

func sentKey(room string, player uint8) string {
	return fmt.Sprintf("mw:%s:sent:%d", room, player)
}

func eventsChannel(room string) string {
	return fmt.Sprintf("mw:%s:events", room)
}

// sendScript records the location in the sender's sent set and pushes the
// item to every recipient inbox. It returns -1 when the location was
// already sent. KEYS[1] is the sent set, KEYS[2:] the inboxes; ARGV[1] the
// member and ARGV[2] the payload.
var sendScript = redis.NewScript(`
	if ARGV[1] ~= "" and redis.call("sadd", KEYS[1], ARGV[1]) == 0 then
		return -1
	end
	for i = 2, #KEYS do
		redis.call("rpush", KEYS[i], ARGV[2])
	end
	return #KEYS - 1
`)

// Relay is the Redis side of multiworld.
type Relay struct {
	client *redis.Client
	logger *slog.Logger
}

func NewRelay(client *redis.Client, logger *slog.Logger) *Relay {
	return &Relay{
		client: client,
		logger: logger,
	}
}

// Join registers player in room.
func (r *Relay) Join(ctx context.Context, room string, player uint8) error {
	if player == override.PlayerEveryone {
		return fmt.Errorf("%w: %d", ErrInvalidPlayer, player)
	}
	if err := r.client.SAdd(ctx, playersKey(room), player).Err(); err != nil {
		return fmt.Errorf("failed to join room: %w", err)
	}
	r.publish(ctx, room, Event{Type: EventPlayerJoined, From: player})
	return nil
}

// Players returns the players registered in room in ascending order.
func (r *Relay) Players(ctx context.Context, room string) ([]uint8, error) {
	members, err := r.client.SMembers(ctx, playersKey(room)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	players := make([]uint8, 0, len(members))
	for _, m := range members {
		n, err := strconv.ParseUint(m, 10, 8)
		if err != nil {
			r.logger.Warn("Invalid player in room", "room", room, "member", m)
			continue
		}
		players = append(players, uint8(n))
	}
	slices.Sort(players)
	return players, nil
}

// Send delivers item from one player to another. Items addressed to
// player 0 go to every other player of the room; items addressed to the
// sender are only announced. A location key already sent by this player is
// not delivered again. Send reports how many inboxes received the item.
func (r *Relay) Send(ctx context.Context, room string, to uint8, d Delivery) (int, error) {
	var recipients []uint8
	switch to {
	case d.From:
	case override.PlayerEveryone:
		players, err := r.Players(ctx, room)
		if err != nil {
			return 0, err
		}
		for _, p := range players {
			if p != d.From {
				recipients = append(recipients, p)
			}
		}
	default:
		recipients = []uint8{to}
	}

	payload, err := json.Marshal(d)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal delivery: %w", err)
	}

	keys := make([]string, 0, len(recipients)+1)
	keys = append(keys, sentKey(room, d.From))
	for _, p := range recipients {
		keys = append(keys, inboxKey(room, p))
	}
	member := ""
	if d.Key != 0 {
		member = strconv.FormatUint(d.Key, 10)
	}

	n, err := sendScript.Run(ctx, r.client, keys, member, payload).Int()
	if err != nil {
		return 0, fmt.Errorf("failed to send item: %w", err)
	}
	if n < 0 {
		r.logger.Debug("Location already sent", "room", room, "from", d.From, "key", override.Unpack(d.Key).String())
		return 0, nil
	}

	typ := EventItemSent
	if to == d.From {
		typ = EventItemFound
	}
	r.publish(ctx, room, Event{Type: typ, From: d.From, To: to, Item: d.Item, Key: d.Key})
	return n, nil
}

// Receive pops the oldest delivery from player's inbox. It returns nil when
// the inbox is empty.
func (r *Relay) Receive(ctx context.Context, room string, player uint8) (*Delivery, error) {
	data, err := r.client.LPop(ctx, inboxKey(room, player)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to receive item: %w", err)
	}

	var d Delivery
	if err := json.Unmarshal(data, &d); err != nil {
		r.logger.Error("Dropping malformed delivery", "room", room, "player", player, "error", err)
		return nil, fmt.Errorf("failed to unmarshal delivery: %w", err)
	}
	return &d, nil
}

// Pending returns the number of deliveries waiting for player.
func (r *Relay) Pending(ctx context.Context, room string, player uint8) (int64, error) {
	n, err := r.client.LLen(ctx, inboxKey(room, player)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read inbox length: %w", err)
	}
	return n, nil
}

// progressRecord is the hash layout of a player's progress.
type progressRecord struct {
	Hookshot      uint8 `redis:"hookshot"`
	Strength      uint8 `redis:"strength"`
	BombBag       uint8 `redis:"bomb_bag"`
	Quiver        uint8 `redis:"quiver"`
	BulletBag     uint8 `redis:"bullet_bag"`
	Wallet        uint8 `redis:"wallet"`
	Scale         uint8 `redis:"scale"`
	NutCapacity   uint8 `redis:"nut_capacity"`
	StickCapacity uint8 `redis:"stick_capacity"`
	Magic         uint8 `redis:"magic"`
	Ocarina       uint8 `redis:"ocarina"`
	Bombchus      bool  `redis:"bombchus"`
	RutosLetter   bool  `redis:"rutos_letter"`
	Hearts        uint8 `redis:"hearts"`
}

// PublishProgress stores player's progress.
func (r *Relay) PublishProgress(ctx context.Context, room string, player uint8, p items.Progress) error {
	if err := r.client.HSet(ctx, progressKey(room, player), progressRecord(p)).Err(); err != nil {
		return fmt.Errorf("failed to publish progress: %w", err)
	}
	return nil
}

// Progress returns the last progress published by player. The second
// result is false when the player never published any.
func (r *Relay) Progress(ctx context.Context, room string, player uint8) (items.Progress, bool, error) {
	res := r.client.HGetAll(ctx, progressKey(room, player))
	vals, err := res.Result()
	if err != nil {
		return items.Progress{}, false, fmt.Errorf("failed to read progress: %w", err)
	}
	if len(vals) == 0 {
		return items.Progress{}, false, nil
	}

	var rec progressRecord
	if err := res.Scan(&rec); err != nil {
		return items.Progress{}, false, fmt.Errorf("failed to scan progress: %w", err)
	}
	return items.Progress(rec), true, nil
}

// Reset removes every key of room.
func (r *Relay) Reset(ctx context.Context, room string) error {
	var keys []string
	iter := r.client.Scan(ctx, 0, fmt.Sprintf("mw:%s:*", room), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan room keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to reset room: %w", err)
	}
	return nil
}
