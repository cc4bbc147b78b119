package infra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"concurrent-fileserver/fileserver/domain"

	"github.com/redis/go-redis/v9"
)

// RedisStats espelha estatísticas em hashes do Redis:
//
//	<prefix>:admission            allowed/denied cumulativos
//	<prefix>:admission:<minuto>   série por minuto (com TTL)
//	<prefix>:client:<ip>          por cliente (opcional, com TTL)
//	<prefix>:hits                 campo = recurso
//
// É só observabilidade: os contadores do servidor continuam em memória e
// não são restaurados daqui.
type RedisStats struct {
	rdb redis.Cmdable

	prefix string
	// ttl aplica apenas em chaves de série temporal / por cliente.
	ttl time.Duration

	trackClients bool
}

type RedisStatsOption func(*RedisStats)

func WithStatsPrefix(prefix string) RedisStatsOption {
	return func(s *RedisStats) {
		s.prefix = strings.Trim(prefix, ":")
	}
}

func WithStatsTTL(d time.Duration) RedisStatsOption {
	return func(s *RedisStats) { s.ttl = d }
}

func WithStatsTrackClients(track bool) RedisStatsOption {
	return func(s *RedisStats) { s.trackClients = track }
}

func NewRedisStats(rdb redis.Cmdable, opts ...RedisStatsOption) *RedisStats {
	s := &RedisStats{
		rdb:    rdb,
		prefix: "fileserver:stats",
		ttl:    24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStats) Record(ctx context.Context, ev domain.StatsEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	pipe := s.rdb.Pipeline()

	if ev.Kind == domain.EventHit {
		if ev.Resource == "" {
			return nil
		}
		pipe.HIncrBy(ctx, s.prefix+":hits", string(ev.Resource), 1)
		_, err := pipe.Exec(ctx)
		return err
	}

	field := "denied"
	if ev.Allowed {
		field = "allowed"
	}

	pipe.HIncrBy(ctx, s.prefix+":admission", field, 1)

	bucketKey := fmt.Sprintf("%s:admission:%s", s.prefix, at.UTC().Format("200601021504"))
	pipe.HIncrBy(ctx, bucketKey, field, 1)
	if s.ttl > 0 {
		pipe.Expire(ctx, bucketKey, s.ttl)
	}

	if s.trackClients {
		if c := strings.TrimSpace(string(ev.Client)); c != "" {
			clientKey := s.prefix + ":client:" + c
			pipe.HIncrBy(ctx, clientKey, field, 1)
			if s.ttl > 0 {
				pipe.Expire(ctx, clientKey, s.ttl)
			}
		}
	}

	_, err := pipe.Exec(ctx)
	return err
}
