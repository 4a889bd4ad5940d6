package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/threekst/storefront-gateway/internal/core/domain"
)

const wizardTTL = 24 * time.Hour

// WizardStore persists booking wizard state as a JSON blob under
// wizard:<sid>. Each save replaces the whole state.
type WizardStore struct {
	client *redis.Client
}

func NewWizardStore(client *redis.Client) *WizardStore {
	return &WizardStore{client: client}
}

func (w *WizardStore) Get(ctx context.Context, sid string) (*domain.WizardState, error) {
	raw, err := w.client.Get(ctx, wizardKey(sid)).Result()
	if err == redis.Nil {
		return nil, domain.ErrWizardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("wizard get: %w", err)
	}

	var state domain.WizardState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("wizard get: decode: %w", err)
	}
	return &state, nil
}

func (w *WizardStore) Save(ctx context.Context, sid string, state *domain.WizardState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("wizard save: encode: %w", err)
	}
	if err := w.client.Set(ctx, wizardKey(sid), raw, wizardTTL).Err(); err != nil {
		return fmt.Errorf("wizard save: %w", err)
	}
	return nil
}

func (w *WizardStore) Delete(ctx context.Context, sid string) error {
	if err := w.client.Del(ctx, wizardKey(sid)).Err(); err != nil {
		return fmt.Errorf("wizard delete: %w", err)
	}
	return nil
}

func wizardKey(sid string) string {
	return "wizard:" + sid
}
