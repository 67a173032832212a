package decl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cserrors "github.com/toyz/cskit/pkg/errors"
)

type symbolRef struct {
	ID   int
	Name string
}

func TestMetadata_StoreAndLookup(t *testing.T) {
	m := NewMethod("void", "Run")
	m = WithMeta(m, "symbol", symbolRef{ID: 7, Name: "Run"})
	m = WithMeta(m, "generated", true)

	sym, err := Meta[symbolRef](m, "symbol")
	require.NoError(t, err)
	assert.Equal(t, 7, sym.ID)

	generated, err := Meta[bool](m, "generated")
	require.NoError(t, err)
	assert.True(t, generated)
}

func TestMetadata_MissingKey(t *testing.T) {
	f := WithMeta(NewField("int", "x"), "order", 3)

	testCases := []struct {
		name  string
		check func() error
	}{
		{
			name: "absent key",
			check: func() error {
				_, err := Meta[int](f, "other")
				return err
			},
		},
		{
			name: "mismatched type",
			check: func() error {
				_, err := Meta[string](f, "order")
				return err
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.check()
			require.Error(t, err)
			assert.ErrorIs(t, err, cserrors.ErrMissingKey)
		})
	}
}

func TestMetadata_SameKeyDifferentTypes(t *testing.T) {
	p := NewParameter("int", "x")
	p = WithMeta(p, "tag", 1)
	p = WithMeta(p, "tag", "one")

	n, err := Meta[int](p, "tag")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	s, err := Meta[string](p, "tag")
	require.NoError(t, err)
	assert.Equal(t, "one", s)
	assert.Equal(t, 2, p.Meta().Len())
}

func TestMetadata_CopyOnWrite(t *testing.T) {
	base := WithMeta(Class("A"), "k", 1)
	derived := WithMeta(base, "k", 2)

	v, err := Meta[int](base, "k")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = Meta[int](derived, "k")
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}
