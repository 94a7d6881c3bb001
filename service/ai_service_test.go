package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tds-assistant/domain"
	"tds-assistant/repository"
)

func newTestAIService(t *testing.T, url string, cache repository.CacheRepository) *AIService {
	t.Helper()
	return NewAIService(AIConfig{
		APIKey:      "test-key",
		URL:         url,
		Model:       "test-model",
		Temperature: 0.2,
		MaxTokens:   64,
		Timeout:     200 * time.Millisecond,
	}, VariantIncomeTax, NewVariantResponder(VariantIncomeTax), cache, zap.NewNop())
}

func completion(content string) string {
	return `{"choices":[{"message":{"role":"assistant","content":` + mustJSON(content) + `}}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestAIService_RemoteSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, 0.2, req.Temperature)
		assert.Equal(t, 64, req.MaxTokens)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, "how much tax do I pay?", req.Messages[1].Content)

		w.Write([]byte(completion("  You pay 36,400 rupees.  ")))
	}))
	defer server.Close()

	svc := newTestAIService(t, server.URL, nil)
	assert.Equal(t, "You pay 36,400 rupees.", svc.Respond(context.Background(), "how much tax do I pay?"))
}

func TestAIService_FallsBackOnFailure(t *testing.T) {
	local := NewVariantResponder(VariantIncomeTax).Respond(context.Background(), "what is tds")

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices": [`))
		}},
		{"unexpected shape", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"output": "hello"}`))
		}},
		{"empty content", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(completion("   ")))
		}},
		{"timeout", func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(2 * time.Second):
			case <-r.Context().Done():
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			svc := newTestAIService(t, server.URL, nil)
			assert.Equal(t, local, svc.Respond(context.Background(), "what is tds"))
		})
	}
}

func TestAIService_FallsBackWhenUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	svc := newTestAIService(t, url, nil)
	reply := svc.Respond(context.Background(), "hello")
	assert.NotEmpty(t, reply)
	assert.Contains(t, reply, "AI TDS assistant")
}

func TestAIService_DisabledWithoutKey(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	svc := NewAIService(AIConfig{URL: server.URL}, VariantIncomeTax,
		NewVariantResponder(VariantIncomeTax), nil, zap.NewNop())

	assert.False(t, svc.Enabled())
	assert.Contains(t, svc.Respond(context.Background(), "80c"), "Section 80C")
	assert.Zero(t, calls.Load())
}

func TestAIService_CachesReplies(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(completion("cached answer")))
	}))
	defer server.Close()

	cache := repository.NewMemoryCache(time.Hour)
	svc := newTestAIService(t, server.URL, cache)
	ctx := context.Background()

	assert.Equal(t, "cached answer", svc.Respond(ctx, "What is 80C?"))
	assert.Equal(t, "cached answer", svc.Respond(ctx, "  what is   80c? "))
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, cache.Len())
}

func TestAIService_SharesConcurrentIdenticalCalls(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		w.Write([]byte(completion("shared answer")))
	}))
	defer server.Close()

	svc := NewAIService(AIConfig{APIKey: "k", URL: server.URL, Timeout: 5 * time.Second},
		VariantIncomeTax, NewVariantResponder(VariantIncomeTax), nil, zap.NewNop())

	var wg sync.WaitGroup
	replies := make([]string, 5)
	for i := range replies {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			replies[i] = svc.Respond(context.Background(), "what is hra")
		}(i)
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, reply := range replies {
		assert.Equal(t, "shared answer", reply)
	}
}

func TestAIService_SharedCallSurvivesFirstCallerCancel(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		w.Write([]byte(completion("shared answer")))
	}))
	defer server.Close()

	svc := NewAIService(AIConfig{APIKey: "k", URL: server.URL, Timeout: 5 * time.Second},
		VariantIncomeTax, NewVariantResponder(VariantIncomeTax), nil, zap.NewNop())

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	var first, second string

	wg.Add(1)
	go func() {
		defer wg.Done()
		first = svc.Respond(firstCtx, "what is hra")
	}()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	wg.Add(1)
	go func() {
		defer wg.Done()
		second = svc.Respond(context.Background(), "what is hra")
	}()
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, "shared answer", first)
	assert.Equal(t, "shared answer", second)
	assert.Equal(t, int32(1), calls.Load())
}

func TestAIService_FailuresAreNotCached(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cache := repository.NewMemoryCache(time.Hour)
	svc := newTestAIService(t, server.URL, cache)
	svc.Respond(context.Background(), "hra")

	assert.Zero(t, cache.Len())
}

func TestAIService_AnalyzeWater(t *testing.T) {
	result, err := NewWaterService(zap.NewNop()).Measure(waterInput(500, 25, 0.64, true))
	require.NoError(t, err)

	t.Run("remote", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req ChatCompletionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Contains(t, req.Messages[1].Content, "TDS: 320 ppm")
			w.Write([]byte(completion("Fine to drink.")))
		}))
		defer server.Close()

		svc := newTestAIService(t, server.URL, nil)
		assert.Equal(t, "Fine to drink.", svc.AnalyzeWater(context.Background(), result))
	})

	t.Run("fallback", func(t *testing.T) {
		svc := NewAIService(AIConfig{}, VariantWaterQuality,
			NewVariantResponder(VariantWaterQuality), nil, zap.NewNop())

		analysis := svc.AnalyzeWater(context.Background(), result)
		assert.Contains(t, analysis, "320 ppm")
		assert.Contains(t, analysis, "Fair")
	})
}

func TestFallbackWaterAnalysis(t *testing.T) {
	analysis := fallbackWaterAnalysis(domain.WaterResult{TDS: 1500, Quality: ClassifyTDS(1500)})
	assert.Contains(t, analysis, "Unacceptable")
	assert.Contains(t, analysis, "Reverse osmosis")
}

func TestCacheKey(t *testing.T) {
	a := cacheKey(VariantIncomeTax, "m", "chat", "What is TDS")
	assert.Equal(t, a, cacheKey(VariantIncomeTax, "m", "chat", "  what  is tds "))
	assert.NotEqual(t, a, cacheKey(VariantWaterQuality, "m", "chat", "What is TDS"))
	assert.NotEqual(t, a, cacheKey(VariantIncomeTax, "other", "chat", "What is TDS"))
}
