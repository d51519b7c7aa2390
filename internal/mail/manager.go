package mail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"github.com/yourusername/hirehub/internal/config"
)

const taskTypeWelcome = "mail:welcome"

// Manager は配信タスクの投入と状態管理を担います。
type Manager struct {
	cfg    *config.Config
	client *asynq.Client
	server *asynq.Server
	mux    *asynq.ServeMux
	store  *Store
	sender Sender
	logger *log.Logger
}

// TaskPayload は配信タスクのペイロードです。
type TaskPayload struct {
	DeliveryID string `json:"deliveryId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	OTP        string `json:"otp"`
}

// NewManager は Manager を初期化します。
func NewManager(cfg *config.Config, sender Sender, store *Store, logger *log.Logger) (*Manager, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if sender == nil {
		return nil, errors.New("sender is nil")
	}
	if store == nil {
		return nil, errors.New("store is nil")
	}
	opt, err := asynq.ParseRedisURI(cfg.QueueRedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := asynq.NewClient(opt)
	server := asynq.NewServer(
		opt,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"mail": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	manager := &Manager{
		cfg:    cfg,
		client: client,
		server: server,
		mux:    mux,
		store:  store,
		sender: sender,
		logger: logger,
	}
	mux.HandleFunc(taskTypeWelcome, manager.handleWelcomeTask)
	return manager, nil
}

// StartWorkers は Asynq サーバーをバックグラウンドで起動します。
func (m *Manager) StartWorkers() {
	go func() {
		if err := m.server.Run(m.mux); err != nil && err != asynq.ErrServerClosed {
			if m.logger != nil {
				m.logger.Printf("asynq server stopped with error: %v", err)
			} else {
				log.Printf("asynq server stopped with error: %v", err)
			}
		}
	}()
}

// Shutdown はサーバーとクライアントを閉じます。
func (m *Manager) Shutdown(ctx context.Context) error {
	m.server.Shutdown()
	m.client.Close()
	return nil
}

// Enqueue は配信タスクをキューに投入します。
func (m *Manager) Enqueue(ctx context.Context, payload *TaskPayload) (string, error) {
	if payload == nil {
		return "", fmt.Errorf("payload is nil")
	}
	if payload.DeliveryID == "" {
		return "", fmt.Errorf("payload.DeliveryID is required")
	}
	if payload.Email == "" {
		return "", fmt.Errorf("payload.Email is required")
	}

	record := &Record{
		DeliveryID: payload.DeliveryID,
		Email:      payload.Email,
		Status:     StatusQueued,
	}
	if err := m.store.Upsert(ctx, record); err != nil {
		return "", err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	task := asynq.NewTask(taskTypeWelcome, body, asynq.Queue("mail"))
	info, err := m.client.EnqueueContext(ctx, task, asynq.MaxRetry(3))
	if err != nil {
		return "", err
	}
	return info.ID, nil
}

// GetRecord は配信情報を取得します。
func (m *Manager) GetRecord(ctx context.Context, deliveryID string) (*Record, error) {
	return m.store.Get(ctx, deliveryID)
}

func (m *Manager) handleWelcomeTask(ctx context.Context, task *asynq.Task) error {
	var payload TaskPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}
	if payload.DeliveryID == "" {
		return fmt.Errorf("missing deliveryId in payload")
	}

	if err := m.store.Upsert(ctx, &Record{
		DeliveryID: payload.DeliveryID,
		Email:      payload.Email,
		Status:     StatusSending,
	}); err != nil {
		return err
	}

	if err := m.sender.SendWelcome(&WelcomeMessage{
		Name:  payload.Name,
		Email: payload.Email,
		OTP:   payload.OTP,
	}); err != nil {
		if markErr := m.store.MarkFailed(ctx, payload.DeliveryID, &ErrorInfo{
			Code:    "SEND_FAILED",
			Message: err.Error(),
		}); markErr != nil && m.logger != nil {
			m.logger.Printf("failed to mark delivery %s as failed: %v", payload.DeliveryID, markErr)
		}
		// エラーを返すと Asynq が再試行する
		return err
	}

	return m.store.MarkSent(ctx, payload.DeliveryID)
}
