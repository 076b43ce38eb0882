// Package face provides face-embedding comparison for KYC verification.
package face

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/openbims/bims-backend/internal/logger"
	"github.com/openbims/bims-backend/internal/utils"
)

// ModelProvider yields face embeddings. Implementations are constructed once
// at process start and passed by reference; there is no hidden global model
// cache.
type ModelProvider interface {
	Embed(ctx context.Context, img []byte) ([]float64, error)
}

// CosineSimilarity returns the cosine of the angle between two embeddings,
// or 0 when either vector is degenerate.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

type embedRequest struct {
	Image string `json:"image"`
}

type embedResponse struct {
	Embedding []float64 `json:"embedding"`
}

// httpProvider calls the face-embedding sidecar. The resty client is built
// lazily on first use so processes that never run KYC pay nothing.
type httpProvider struct {
	log *logger.Logger

	once sync.Once
	http *resty.Client
}

func NewHTTPProvider(log *logger.Logger) ModelProvider {
	return &httpProvider{log: log.With("client", "FaceEmbedder")}
}

func (p *httpProvider) init() {
	baseURL := utils.GetEnv("FACE_EMBED_URL", "http://localhost:8500", p.log)
	p.http = resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json")
}

func (p *httpProvider) Embed(ctx context.Context, img []byte) ([]float64, error) {
	p.once.Do(p.init)

	if len(img) == 0 {
		return nil, fmt.Errorf("empty image")
	}

	var out embedResponse
	resp, err := p.http.R().
		SetContext(ctx).
		SetBody(embedRequest{Image: base64.StdEncoding.EncodeToString(img)}).
		SetResult(&out).
		Post("/embed")
	if err != nil {
		return nil, fmt.Errorf("embed request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("embed request: status %d", resp.StatusCode())
	}
	if len(out.Embedding) == 0 {
		return nil, fmt.Errorf("embed request: empty embedding")
	}
	return out.Embedding, nil
}
