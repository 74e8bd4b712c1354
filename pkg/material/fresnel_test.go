package material

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDielectricReflectanceBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		eta := 0.3 + rng.Float64()*3.0
		cosI := rng.Float64()
		r, cosT := dielectricReflectance(eta, cosI)
		assert.GreaterOrEqual(t, r, 0.0)
		assert.LessOrEqual(t, r, 1.0)
		assert.GreaterOrEqual(t, cosT, 0.0)
	}
}

func TestDielectricReflectanceTotalInternalReflection(t *testing.T) {
	// eta > 1 (leaving a denser medium) at a grazing angle forces sin2ThetaT >= 1.
	r, cosT := dielectricReflectance(2.0, 0.05)
	assert.Equal(t, 1.0, r)
	assert.Equal(t, 0.0, cosT)
}

func TestDielectricReflectanceNormalIncidence(t *testing.T) {
	r, cosT := dielectricReflectance(1.0/1.5, 1.0)
	expected := ((1.0/1.5 - 1) / (1.0/1.5 + 1))
	assert.InDelta(t, expected*expected, r, 1e-9)
	assert.InDelta(t, 1.0, cosT, 1e-9)
}

func TestConductorReflectanceBounds(t *testing.T) {
	ior, err := LookupConductorIOR("Au")
	assert.NoError(t, err)

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		cosI := rng.Float64()
		r := conductorReflectanceRGB(ior, cosI)
		for _, channel := range []float64{r.X, r.Y, r.Z} {
			assert.GreaterOrEqual(t, channel, 0.0)
			assert.LessOrEqual(t, channel, 1.0)
		}
	}
}

func TestLookupConductorIORKnownSymbolsResolve(t *testing.T) {
	for _, symbol := range []string{"Au", "Ag", "Cu", "Al", "W"} {
		ior, err := LookupConductorIOR(symbol)
		assert.NoError(t, err)
		assert.Greater(t, ior.Eta.X, 0.0, symbol)
	}
}
