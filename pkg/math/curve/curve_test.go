package curve_test

import (
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/pubkey/pkg/math/curve"
)

var groups = []curve.Curve{curve.Secp256k1{}, curve.P256{}}

func scalar(group curve.Curve, x uint64) curve.Scalar {
	return group.NewScalar().SetNat(new(saferith.Nat).SetUint64(x))
}

func TestBasePointRoundTrip(t *testing.T) {
	for _, group := range groups {
		t.Run(group.Name(), func(t *testing.T) {
			g := group.NewBasePoint()
			data, err := g.MarshalBinary()
			require.NoError(t, err)
			assert.Len(t, data, 33)

			decoded := group.NewPoint()
			require.NoError(t, decoded.UnmarshalBinary(data))
			assert.True(t, g.Equal(decoded))
			assert.False(t, decoded.IsIdentity())
		})
	}
}

func TestIdentity(t *testing.T) {
	for _, group := range groups {
		t.Run(group.Name(), func(t *testing.T) {
			id := group.NewPoint()
			assert.True(t, id.IsIdentity())
			_, err := id.XBytes()
			assert.Error(t, err)

			zero := group.NewScalar()
			assert.True(t, zero.IsZero())
			assert.True(t, zero.ActOnBase().IsIdentity())

			data, err := id.MarshalBinary()
			require.NoError(t, err)
			decoded := group.NewBasePoint()
			require.NoError(t, decoded.UnmarshalBinary(data))
			assert.True(t, decoded.IsIdentity())
		})
	}
}

func TestAdd(t *testing.T) {
	for _, group := range groups {
		t.Run(group.Name(), func(t *testing.T) {
			a, b := scalar(group, 0xdeadbeef), scalar(group, 0x1234567)
			sum := scalar(group, 0xdeadbeef+0x1234567)
			assert.True(t, a.ActOnBase().Add(b.ActOnBase()).Equal(sum.ActOnBase()))

			g := group.NewBasePoint()
			assert.True(t, g.Add(g).Equal(scalar(group, 2).ActOnBase()))
			assert.True(t, g.Add(group.NewPoint()).Equal(g))
			assert.True(t, group.NewPoint().Add(g).Equal(g))

			// n-1 is -1, so G + (n-1)G is the identity
			nMinus1 := new(saferith.Nat).Sub(group.Order().Nat(), new(saferith.Nat).SetUint64(1), group.ScalarBits())
			minusG := group.NewScalar().SetNat(nMinus1).ActOnBase()
			assert.True(t, g.Add(minusG).IsIdentity())
		})
	}
}

func TestActCommutes(t *testing.T) {
	for _, group := range groups {
		t.Run(group.Name(), func(t *testing.T) {
			a, b := scalar(group, 0xdeadbeef), scalar(group, 0x1234567)
			A, B := a.ActOnBase(), b.ActOnBase()
			ab, ba := a.Act(B), b.Act(A)
			assert.True(t, ab.Equal(ba))

			xab, err := ab.XBytes()
			require.NoError(t, err)
			xba, err := ba.XBytes()
			require.NoError(t, err)
			assert.Equal(t, xab, xba)
			assert.Len(t, xab, group.FieldBytes())
		})
	}
}

func TestScalarReduction(t *testing.T) {
	for _, group := range groups {
		t.Run(group.Name(), func(t *testing.T) {
			n := group.Order().Nat()
			assert.True(t, group.NewScalar().SetNat(n).IsZero())

			one := new(saferith.Nat).SetUint64(1)
			nPlusOne := new(saferith.Nat).Add(n, one, -1)
			s := group.NewScalar().SetNat(nPlusOne)
			assert.True(t, s.Equal(scalar(group, 1)))
			assert.True(t, s.ActOnBase().Equal(group.NewBasePoint()))
		})
	}
}

func TestScalarMarshal(t *testing.T) {
	for _, group := range groups {
		t.Run(group.Name(), func(t *testing.T) {
			s := scalar(group, 42)
			data, err := s.MarshalBinary()
			require.NoError(t, err)
			assert.Len(t, data, 32)

			decoded := group.NewScalar()
			require.NoError(t, decoded.UnmarshalBinary(data))
			assert.True(t, s.Equal(decoded))

			assert.Error(t, decoded.UnmarshalBinary(data[1:]))
			overflow := make([]byte, 32)
			for i := range overflow {
				overflow[i] = 0xff
			}
			assert.Error(t, decoded.UnmarshalBinary(overflow))
		})
	}
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	for _, group := range groups {
		t.Run(group.Name(), func(t *testing.T) {
			bad := make([]byte, 33)
			bad[0] = 7
			assert.Error(t, group.NewPoint().UnmarshalBinary(bad))
			assert.Error(t, group.NewPoint().UnmarshalBinary([]byte{2, 3}))
		})
	}
}

func TestFromName(t *testing.T) {
	for _, group := range groups {
		found, err := curve.FromName(group.Name())
		require.NoError(t, err)
		assert.Equal(t, group, found)
	}
	_, err := curve.FromName("curve25519")
	assert.ErrorIs(t, err, curve.ErrUnknownCurve)
}

func BenchmarkActOnBase(b *testing.B) {
	for _, group := range groups {
		s := scalar(group, 0xdeadbeefcafe)
		b.Run(group.Name(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				s.ActOnBase()
			}
		})
	}
}
