package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartTotal(t *testing.T) {
	t.Run("ExactToTheCent", func(t *testing.T) {
		s := newTestStore(t)
		s.AddToCart(testProduct("p1", 12.99), 2)
		s.AddToCart(testProduct("p2", 8.50), 3)

		total := s.CartTotal()

		assert.InDelta(t, 51.48, total.Amount, 0.0001)
		assert.Equal(t, "RUB", total.Currency)
	})

	t.Run("EmptyCart", func(t *testing.T) {
		s := newTestStore(t)

		total := s.CartTotal()

		assert.Zero(t, total.Amount)
		assert.Empty(t, total.Currency)
	})

	t.Run("StableWithoutMutation", func(t *testing.T) {
		s := newTestStore(t)
		s.AddToCart(testProduct("p1", 0.1), 3)

		first := s.CartTotal()
		second := s.CartTotal()

		assert.Equal(t, first, second)
	})
}

func TestCartCounts(t *testing.T) {
	s := newTestStore(t)
	s.AddToCart(testProduct("p1", 10), 2)
	s.AddToCart(testProduct("p2", 10), 3)

	assert.Equal(t, 5, s.CartUnitCount())
	assert.Equal(t, 2, s.CartLineCount())
}

func TestMembership(t *testing.T) {
	s := newTestStore(t)
	s.AddToCart(testProduct("p1", 10), 1)
	s.AddToWishlist(testProduct("w1", 1))
	s.AddToCompare(testProduct("c1", 1))

	assert.True(t, s.IsInCart("p1"))
	assert.False(t, s.IsInCart("w1"))
	assert.True(t, s.IsInWishlist("w1"))
	assert.False(t, s.IsInWishlist("p1"))
	assert.True(t, s.IsInCompare("c1"))
	assert.False(t, s.IsInCompare("p1"))
	require.False(t, s.CompareFull())
}
