// Package ordernumber generates human-readable order numbers.
package ordernumber

import (
	"fmt"
	"math/rand/v2"
	"time"

	"storefront/internal/domain/constants"
	"storefront/internal/domain/service"
)

// Generator builds COD order numbers from the current unix milliseconds and
// four random digits, e.g. COD17213344556671234.
type Generator struct {
	now  func() time.Time
	rand func(n int) int
}

// New creates a generator backed by the wall clock.
func New() service.OrderNumberGenerator {
	return &Generator{now: time.Now, rand: rand.IntN}
}

// Next returns a candidate order number.
func (g *Generator) Next() string {
	return fmt.Sprintf("%s%d%04d", constants.OrderNumberPrefix, g.now().UnixMilli(), g.rand(10000))
}
