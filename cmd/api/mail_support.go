package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"

	"github.com/yourusername/hirehub/internal/config"
	"github.com/yourusername/hirehub/internal/mail"
	"github.com/yourusername/hirehub/internal/user"
)

// deliveryRecordTTL は配信状態レコードをRedisに保持する期間です。
const deliveryRecordTTL = 24 * time.Hour

type welcomeMailScheduler struct {
	manager *mail.Manager
}

func (s *welcomeMailScheduler) ScheduleWelcome(ctx context.Context, u *user.User) error {
	_, err := s.manager.Enqueue(ctx, &mail.TaskPayload{
		DeliveryID: uuid.NewString(),
		Name:       u.Name,
		Email:      u.Email,
		OTP:        u.OTP,
	})
	return err
}

// setupMail はメール配信系を構築します。
// 無効化されている場合や開発環境で構築に失敗した場合は nil を返し、
// 登録処理はメール無しで続行します。
func setupMail(cfg *config.Config) (user.MailScheduler, *mail.Manager) {
	if cfg.MailDisabled {
		log.Printf("mail delivery disabled")
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.QueueRedisURL)
	if err != nil {
		if cfg.GinMode == "release" {
			log.Fatalf("Failed to parse redis url: %v", err)
		}
		log.Printf("mail delivery unavailable: %v", err)
		return nil, nil
	}

	redisClient := redis.NewClient(opt)
	store := mail.NewStore(redisClient, deliveryRecordTTL)
	sender := mail.NewSMTPSender(cfg)
	manager, err := mail.NewManager(cfg, sender, store, log.Default())
	if err != nil {
		if cfg.GinMode == "release" {
			log.Fatalf("Failed to set up mail manager: %v", err)
		}
		log.Printf("mail delivery unavailable: %v", err)
		return nil, nil
	}
	return &welcomeMailScheduler{manager: manager}, manager
}
