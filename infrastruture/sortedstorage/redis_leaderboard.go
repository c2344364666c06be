package sortedstorage

import (
	"context"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix  = "maze"
	defaultMaxSize = 100

	// leaderboard key format: <prefix>:leaderboard:<width>x<height>
	leaderboardKeyFmt = "%s:leaderboard:%dx%d"
)

var _ i.Leaderboard = &RedisLeaderboard{}

// Options configures a RedisLeaderboard.
type Options struct {
	Prefix  string        // Key prefix.
	MaxSize int64         // Entries kept per board size.
	TTL     time.Duration // Expiry of an idle board size; zero keeps keys forever.
	Logger  i.Logger
}

// RedisLeaderboard keeps best completion times in Redis sorted sets, one set
// per board size, scored in milliseconds.
type RedisLeaderboard struct {
	client *redis.Client
	locker *redsync.Redsync
	opts   Options
}

// NewRedisLeaderboard initializes a RedisLeaderboard on the given client.
func NewRedisLeaderboard(client *redis.Client, opts Options) (*RedisLeaderboard, error) {
	if client == nil {
		return nil, fmt.Errorf("leaderboard requires a redis client")
	}
	if opts.Prefix == "" {
		opts.Prefix = defaultPrefix
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = defaultMaxSize
	}

	pool := goredis.NewPool(client)
	return &RedisLeaderboard{
		client: client,
		locker: redsync.New(pool),
		opts:   opts,
	}, nil
}

// Submit stores elapsed as the player's score unless they already hold a
// better one, then trims the set to MaxSize.
func (rl *RedisLeaderboard) Submit(ctx context.Context, width, height int, playerID uuid.UUID, elapsed time.Duration) error {
	key := rl.key(width, height)
	err := rl.client.ZAddArgs(ctx, key, redis.ZAddArgs{
		LT:      true,
		Members: []redis.Z{{Score: float64(elapsed.Milliseconds()), Member: playerID.String()}},
	}).Err()
	if err != nil {
		return fmt.Errorf("adding score: %w", err)
	}

	// Set expiration only if it's not already set
	if rl.opts.TTL > 0 {
		ttl, err := rl.client.TTL(ctx, key).Result()
		if err == nil && ttl == -1 {
			_ = rl.client.Expire(ctx, key, rl.opts.TTL).Err()
		}
	}

	return rl.trim(ctx, key)
}

// trim drops everything ranked below MaxSize. Several API instances may
// submit to the same set, so the count-then-remove runs under a lock.
func (rl *RedisLeaderboard) trim(ctx context.Context, key string) error {
	mutex := rl.locker.NewMutex(key + ":trim_lock")
	if err := mutex.LockContext(ctx); err != nil {
		return fmt.Errorf("obtaining trim lock: %w", err)
	}
	defer func() {
		if ok, err := mutex.UnlockContext(ctx); (err != nil || !ok) && rl.opts.Logger != nil {
			rl.opts.Logger.Warning(fmt.Sprintf("releasing trim lock for %s: %v", key, err))
		}
	}()

	if rl.client.ZCard(ctx, key).Val() <= rl.opts.MaxSize {
		return nil
	}
	return rl.client.ZRemRangeByRank(ctx, key, rl.opts.MaxSize, -1).Err()
}

// Top returns up to limit entries for the board size, fastest first.
func (rl *RedisLeaderboard) Top(ctx context.Context, width, height int, limit int64) ([]i.LeaderboardEntry, error) {
	if limit <= 0 || limit > rl.opts.MaxSize {
		limit = rl.opts.MaxSize
	}

	scores, err := rl.client.ZRangeWithScores(ctx, rl.key(width, height), 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading leaderboard: %w", err)
	}

	entries := make([]i.LeaderboardEntry, 0, len(scores))
	for rank, z := range scores {
		id, err := uuid.Parse(fmt.Sprint(z.Member))
		if err != nil {
			continue
		}
		entries = append(entries, i.LeaderboardEntry{
			Rank:     int64(rank) + 1,
			PlayerID: id,
			Best:     time.Duration(z.Score) * time.Millisecond,
		})
	}
	return entries, nil
}

func (rl *RedisLeaderboard) key(width, height int) string {
	return fmt.Sprintf(leaderboardKeyFmt, rl.opts.Prefix, width, height)
}
