package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/kirillkom/legistra/internal/core/ports"
)

// ModelCache loads each summarization model once and shares it across runs.
// Loads are serialized; a failed load is not remembered.
type ModelCache struct {
	loader ports.SummarizerLoader

	mu     sync.Mutex
	models map[string]ports.Summarizer
}

func NewModelCache(loader ports.SummarizerLoader) *ModelCache {
	return &ModelCache{
		loader: loader,
		models: make(map[string]ports.Summarizer),
	}
}

func (c *ModelCache) GetOrLoad(ctx context.Context, modelID string) (ports.Summarizer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if model, ok := c.models[modelID]; ok {
		return model, nil
	}
	if c.loader == nil {
		return nil, fmt.Errorf("load model %s: no loader configured", modelID)
	}
	model, err := c.loader.Load(ctx, modelID)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", modelID, err)
	}
	c.models[modelID] = model
	return model, nil
}
