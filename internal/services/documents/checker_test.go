package documents

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullSet() Set {
	return Set{
		Identity: []byte("identity-scan"),
		Tax:      []byte("tax-return"),
		Income:   []byte("payslip"),
	}
}

func TestSetComplete(t *testing.T) {
	assert.True(t, fullSet().Complete())

	partial := fullSet()
	partial.Tax = nil
	assert.False(t, partial.Complete())

	assert.False(t, Set{}.Complete())
}

func TestSetGet(t *testing.T) {
	s := fullSet()
	assert.Equal(t, []byte("identity-scan"), s.Get(KindIdentity))
	assert.Equal(t, []byte("tax-return"), s.Get(KindTax))
	assert.Equal(t, []byte("payslip"), s.Get(KindIncome))
	assert.Nil(t, s.Get(Kind("passport")))
}

func TestValidKind(t *testing.T) {
	assert.True(t, ValidKind(KindIdentity))
	assert.True(t, ValidKind(KindTax))
	assert.True(t, ValidKind(KindIncome))
	assert.False(t, ValidKind(Kind("utility-bill")))
}

func TestMatches(t *testing.T) {
	reference := fullSet()

	t.Run("identical sets match", func(t *testing.T) {
		assert.True(t, Matches(fullSet(), reference))
	})

	t.Run("single differing byte fails", func(t *testing.T) {
		submitted := fullSet()
		submitted.Income = []byte("payslip2")
		assert.False(t, Matches(submitted, reference))
	})

	t.Run("missing submitted document fails", func(t *testing.T) {
		submitted := fullSet()
		submitted.Identity = nil
		assert.False(t, Matches(submitted, reference))
	})

	t.Run("missing reference document fails even on equal bytes", func(t *testing.T) {
		ref := fullSet()
		ref.Tax = nil
		submitted := fullSet()
		submitted.Tax = nil
		assert.False(t, Matches(submitted, ref))
	})

	t.Run("empty reference set never matches", func(t *testing.T) {
		assert.False(t, Matches(fullSet(), Set{}))
	})
}
