package minio

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/lignum-storefront/internal/cfg"
	"github.com/DRSN-tech/lignum-storefront/internal/domain"
	"github.com/DRSN-tech/lignum-storefront/internal/usecase"
	"github.com/DRSN-tech/lignum-storefront/pkg/jitter"
	"github.com/DRSN-tech/lignum-storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memImageRepo struct {
	mu       sync.Mutex
	objects  map[string][]byte
	failName string
	deleted  []string
}

func (r *memImageRepo) Upload(_ context.Context, img *domain.Image) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failName != "" && strings.Contains(img.ObjectKey, r.failName) {
		return "", errors.New("s3 unavailable")
	}
	r.objects[img.ObjectKey] = img.Bytes
	return img.ObjectKey, nil
}

func (r *memImageRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.objects, key)
	r.deleted = append(r.deleted, key)
	return nil
}

func (r *memImageRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.objects)
}

func newInfra(repo *memImageRepo) *MinioInfrastructure {
	m := NewMinioInfrastructure(repo, &cfg.MinIOCfg{
		BucketName:        "product-images",
		PublicBaseURL:     "http://cdn.local/product-images/",
		UploadImagesLimit: 2,
	}, logger.NewNop(), context.Background())
	m.cleanupPolicy = jitter.Policy{Attempts: 2, Base: time.Millisecond, Max: time.Millisecond}
	return m
}

func images(names ...string) []usecase.ProductImage {
	out := make([]usecase.ProductImage, 0, len(names))
	for _, n := range names {
		out = append(out, usecase.ProductImage{Name: n, MimeType: "image/png", Data: []byte(n), Size: int64(len(n))})
	}
	return out
}

func TestMinioInfrastructure_UploadImages(t *testing.T) {
	repo := &memImageRepo{objects: map[string][]byte{}}
	m := newInfra(repo)

	res, err := m.UploadImages(context.Background(), usecase.NewUploadImagesReq("Oak Table", images("front", "side", "top")))
	require.NoError(t, err)
	require.Len(t, res.ImagesKeys, 3)
	for _, k := range res.ImagesKeys {
		assert.True(t, strings.HasPrefix(k, "oak-table/"))
		assert.True(t, strings.HasSuffix(k, ".png"))
	}
	assert.Equal(t, 3, repo.count())
}

func TestMinioInfrastructure_UploadFailureCleansUp(t *testing.T) {
	repo := &memImageRepo{objects: map[string][]byte{}, failName: "broken"}
	m := newInfra(repo)

	_, err := m.UploadImages(context.Background(), usecase.NewUploadImagesReq("Oak Table", images("front", "broken")))
	require.Error(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, m.WaitForCleanup(ctx))
	assert.Equal(t, 0, repo.count())
}

func TestMinioInfrastructure_UnsupportedMime(t *testing.T) {
	repo := &memImageRepo{objects: map[string][]byte{}}
	m := newInfra(repo)

	imgs := images("front")
	imgs[0].MimeType = "image/gif"
	_, err := m.UploadImages(context.Background(), usecase.NewUploadImagesReq("Oak Table", imgs))
	require.Error(t, err)
}

func TestMinioInfrastructure_PublicURL(t *testing.T) {
	m := newInfra(&memImageRepo{objects: map[string][]byte{}})
	assert.Equal(t, "http://cdn.local/product-images/oak-table/front.png", m.PublicURL("oak-table/front.png"))
}
