package catalog_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realorai-service/internal/catalog"
	"realorai-service/internal/domain"
)

// fixedRand returns the scripted values in order, modulo n, and repeats the last one.
type fixedRand struct {
	vals []int
	i    int
}

func (r *fixedRand) Intn(n int) int {
	v := r.vals[len(r.vals)-1]
	if r.i < len(r.vals) {
		v = r.vals[r.i]
		r.i++
	}
	return v % n
}

func TestDefaultCatalogShape(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	require.Equal(t, 18, c.Len())

	pairs := c.GenerateAllPairs(rand.New(rand.NewSource(1)))
	require.Len(t, pairs, c.Len())

	perKind := map[domain.ContentKind]int{}
	for _, p := range pairs {
		perKind[p.Kind]++
		assert.False(t, p.Authentic.Synthetic, p.ID)
		assert.True(t, p.Synthetic.Synthetic, p.ID)
		assert.Equal(t, p.Kind, p.Authentic.Kind, p.ID)
		assert.Equal(t, p.Kind, p.Synthetic.Kind, p.ID)
		assert.NotEmpty(t, p.Authentic.Source, p.ID)
		assert.NotEmpty(t, p.Synthetic.Source, p.ID)
	}
	assert.Equal(t, 6, perKind[domain.KindImage])
	assert.Equal(t, 6, perKind[domain.KindVideo])
	assert.Equal(t, 6, perKind[domain.KindQuote])
}

func TestGenerateAllPairsKeepsIdentityAcrossCalls(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	first := c.GenerateAllPairs(&fixedRand{vals: []int{0}})
	second := c.GenerateAllPairs(&fixedRand{vals: []int{1}})
	require.Equal(t, len(first), len(second))

	imageVariantChanged := false
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Authentic, second[i].Authentic)
		if first[i].Kind == domain.KindImage {
			if first[i].Synthetic.ID != second[i].Synthetic.ID {
				imageVariantChanged = true
			}
		} else {
			assert.Equal(t, first[i].Synthetic, second[i].Synthetic, "non-image variant must be deterministic")
		}
	}
	assert.True(t, imageVariantChanged)
}

func TestGenerateAllPairsDrawsImageVariantsIndependently(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	seen := map[string]map[string]bool{}
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		for _, p := range c.GenerateAllPairs(rnd) {
			if p.Kind != domain.KindImage {
				continue
			}
			if seen[p.ID] == nil {
				seen[p.ID] = map[string]bool{}
			}
			seen[p.ID][p.Synthetic.ID] = true
		}
	}
	for id, variants := range seen {
		assert.Len(t, variants, 2, "pair %s should surface both candidates", id)
	}
}

func TestItemsInheritPairAspectRatio(t *testing.T) {
	c, err := catalog.Parse([]byte(`
pairs:
  - id: p1
    kind: video
    aspect_ratio: "9:16"
    authentic: {id: a, source: /a.webm, fallback: /a.mp4}
    synthetic:
      - {id: s, source: /s.webm, aspect_ratio: "1:1"}
`))
	require.NoError(t, err)

	pairs := c.GenerateAllPairs(&fixedRand{vals: []int{0}})
	require.Len(t, pairs, 1)
	assert.Equal(t, "9:16", pairs[0].AspectRatio)
	assert.Equal(t, "9:16", pairs[0].Authentic.AspectRatio)
	assert.Equal(t, "/a.mp4", pairs[0].Authentic.Fallback)
	assert.Equal(t, "1:1", pairs[0].Synthetic.AspectRatio)
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	cases := map[string]string{
		"not yaml": "pairs: [",
		"missing id": `
pairs:
  - kind: image
    authentic: {id: a, source: /a}
    synthetic: [{id: s, source: /s}]
`,
		"duplicate id": `
pairs:
  - {id: p, kind: image, authentic: {id: a, source: /a}, synthetic: [{id: s, source: /s}]}
  - {id: p, kind: image, authentic: {id: b, source: /b}, synthetic: [{id: t, source: /t}]}
`,
		"unknown kind": `
pairs:
  - {id: p, kind: poem, authentic: {id: a, source: x}, synthetic: [{id: s, source: y}]}
`,
		"no synthetic": `
pairs:
  - {id: p, kind: image, authentic: {id: a, source: /a}}
`,
		"two video variants": `
pairs:
  - id: p
    kind: video
    authentic: {id: a, source: /a}
    synthetic: [{id: s, source: /s}, {id: t, source: /t}]
`,
		"empty authentic source": `
pairs:
  - {id: p, kind: quote, authentic: {id: a}, synthetic: [{id: s, source: y}]}
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := catalog.Parse([]byte(doc))
			require.ErrorIs(t, err, domain.ErrInvalidCatalog)
		})
	}
}

func TestLoadFallsBackToBuiltIn(t *testing.T) {
	c, err := catalog.Load("")
	require.NoError(t, err)
	assert.Equal(t, 18, c.Len())

	_, err = catalog.Load("does/not/exist.yaml")
	assert.Error(t, err)
}
