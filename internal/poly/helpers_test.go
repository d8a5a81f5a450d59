package poly

import (
	"math/big"

	"github.com/san-kum/polysim/internal/ring"
)

var zz = ring.Integers{}

func k(n int64) *big.Int { return big.NewInt(n) }

func iv(name string) Polynomial[*big.Int] { return MustVar[*big.Int](zz, name) }

func ic(n int64) Polynomial[*big.Int] { return MustConstant[*big.Int](zz, k(n)) }

func ints(kv ...any) map[string]*big.Int {
	m := make(map[string]*big.Int, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		m[kv[i].(string)] = big.NewInt(int64(kv[i+1].(int)))
	}
	return m
}
