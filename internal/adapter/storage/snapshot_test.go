package storage

import (
	"path/filepath"
	"testing"

	"github.com/niksmo/storefront-session/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) SnapshotRepository {
	t.Helper()
	repo, err := NewSnapshotRepository(filepath.Join(t.TempDir(), "snapshot.db"))
	require.NoError(t, err)
	t.Cleanup(repo.Close)
	return repo
}

func testSnapshot() domain.SessionSnapshot {
	p := domain.Product{
		ProductID: "p1",
		Name:      "testName",
		Brand:     "testBrand",
		Category:  "testCategory",
		Price:     domain.ProductPrice{Amount: 12.99, Currency: "RUB"},
		OriginalPrice: domain.ProductPrice{
			Amount: 15.99, Currency: "RUB",
		},
		Rating:         4.5,
		ReviewCount:    17,
		Badge:          "sale",
		AvailableStock: 3,
		Images: []domain.ProductImage{
			{URL: "imageURL1", Alt: "imageAlt1"},
		},
	}
	return domain.SessionSnapshot{
		Cart:           []domain.CartItem{{Product: p, Quantity: 2}},
		Wishlist:       []domain.Product{p},
		Compare:        []domain.Product{p},
		RecentlyViewed: []domain.Product{p},
	}
}

func TestSnapshotRepository(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		repo := newTestRepo(t)
		saved := testSnapshot()

		err := repo.SaveSnapshot(t.Context(), saved)
		require.NoError(t, err)

		loaded, err := repo.LoadSnapshot(t.Context())
		require.NoError(t, err)

		assert.Equal(t, saved, loaded)
	})

	t.Run("MissingSnapshotIsEmpty", func(t *testing.T) {
		repo := newTestRepo(t)

		loaded, err := repo.LoadSnapshot(t.Context())
		require.NoError(t, err)

		assert.True(t, loaded.IsEmpty())
	})

	t.Run("MalformedSnapshotIsEmpty", func(t *testing.T) {
		repo := newTestRepo(t)

		err := repo.db.Put(snapshotKey, []byte("{not json"), nil)
		require.NoError(t, err)

		loaded, err := repo.LoadSnapshot(t.Context())
		require.NoError(t, err)

		assert.True(t, loaded.IsEmpty())
	})

	t.Run("UnknownFieldsIgnored", func(t *testing.T) {
		repo := newTestRepo(t)

		payload := `{
			"schema_version": 2,
			"cart": [
				{
					"product": {
						"product_id": "p1",
						"name": "testName",
						"price": {"amount": 9.99, "currency": "RUB"},
						"loyalty_points": 42
					},
					"quantity": 1,
					"gift_wrap": true
				}
			],
			"coupons": ["WELCOME10"]
		}`
		err := repo.db.Put(snapshotKey, []byte(payload), nil)
		require.NoError(t, err)

		loaded, err := repo.LoadSnapshot(t.Context())
		require.NoError(t, err)

		require.Len(t, loaded.Cart, 1)
		assert.Equal(t, "p1", loaded.Cart[0].Product.ProductID)
		assert.Equal(t, 1, loaded.Cart[0].Quantity)
		assert.InDelta(t, 9.99, loaded.Cart[0].Product.Price.Amount, 0.0001)
	})

	t.Run("OverwritesPreviousSnapshot", func(t *testing.T) {
		repo := newTestRepo(t)

		err := repo.SaveSnapshot(t.Context(), testSnapshot())
		require.NoError(t, err)

		err = repo.SaveSnapshot(t.Context(), domain.SessionSnapshot{})
		require.NoError(t, err)

		loaded, err := repo.LoadSnapshot(t.Context())
		require.NoError(t, err)

		assert.True(t, loaded.IsEmpty())
	})

	t.Run("ReopenKeepsState", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "snapshot.db")

		repo, err := NewSnapshotRepository(path)
		require.NoError(t, err)

		err = repo.SaveSnapshot(t.Context(), testSnapshot())
		require.NoError(t, err)
		repo.Close()

		reopened, err := NewSnapshotRepository(path)
		require.NoError(t, err)
		t.Cleanup(reopened.Close)

		loaded, err := reopened.LoadSnapshot(t.Context())
		require.NoError(t, err)

		require.Len(t, loaded.Cart, 1)
		assert.Equal(t, "p1", loaded.Cart[0].Product.ProductID)
	})
}
