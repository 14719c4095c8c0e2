package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	apphttp "github.com/jhoicas/estoque-api/internal/interfaces/http"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// hungProductRepo simula un pool colgado: cada llamada espera a que venza el contexto.
type hungProductRepo struct {
	repository.ProductRepository

	mu          sync.Mutex
	hadDeadline bool
}

func (r *hungProductRepo) ListActive(ctx context.Context) ([]*entity.Product, error) {
	_, ok := ctx.Deadline()
	r.mu.Lock()
	r.hadDeadline = ok
	r.mu.Unlock()
	<-ctx.Done()
	return nil, ctx.Err()
}

// syncBuffer bytes.Buffer seguro para el logger y la aserción.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRequestID_EnCabecera(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/ping", "", nil)
	defer resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestStorageTimeout_AlmacenamientoColgadoDevuelve500ConRequestID(t *testing.T) {
	repo := &hungProductRepo{}
	logs := &syncBuffer{}
	env := newTestEnv(t, func(d *apphttp.RouterDeps) {
		d.ProductUC = usecase.NewProductUseCase(repo, d.Hub)
		d.Logger = logger.NewWithWriter(logs, logger.Config{Level: "info"})
		d.StorageTimeout = 50 * time.Millisecond
	})
	_, seller := env.seedUser(t, "ana", entity.RoleVendedor)

	start := time.Now()
	resp := env.do(t, http.MethodGet, "/api/products", seller, nil)
	elapsed := time.Since(start)
	rid := resp.Header.Get("X-Request-ID")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "INTERNAL", body["code"])
	assert.NotContains(t, body["message"], "deadline", "no se filtra el detalle interno")
	assert.Less(t, elapsed, 2*time.Second)

	repo.mu.Lock()
	assert.True(t, repo.hadDeadline, "el almacenamiento recibe un contexto con límite")
	repo.mu.Unlock()

	require.NotEmpty(t, rid)
	var entry map[string]any
	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		var e map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &e), line)
		if e["message"] == "error interno" {
			entry = e
		}
	}
	require.NotNil(t, entry, "el 500 queda registrado")
	assert.Equal(t, rid, entry["request_id"])
	assert.Contains(t, entry["error"], "deadline exceeded")
}
