package plate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProvinces() *ProvinceList {
	return &ProvinceList{names: []string{
		"กรุงเทพมหานคร",
		"เชียงราย",
		"เชียงใหม่",
		"ขอนแก่น",
	}}
}

func TestProvinceExactMatch(t *testing.T) {
	p := testProvinces()

	ok, reason := p.Match("เชียงใหม่", DefaultFuzzyThreshold)
	assert.True(t, ok)
	assert.Equal(t, "Exact province match: เชียงใหม่", reason)

	// Surrounding whitespace is trimmed before matching
	ok, reason = p.Match("  ขอนแก่น ", DefaultFuzzyThreshold)
	assert.True(t, ok)
	assert.Equal(t, "Exact province match: ขอนแก่น", reason)
}

func TestProvincePartialMatch(t *testing.T) {
	p := testProvinces()

	// Fragment contained in a province name; เชียงราย comes first in
	// list order so it wins the tie with เชียงใหม่
	ok, reason := p.Match("เชียง", DefaultFuzzyThreshold)
	assert.True(t, ok)
	assert.Equal(t, "Partial province match: เชียงราย", reason)

	// Province name contained in a longer fragment works too
	ok, reason = p.Match("จังหวัดขอนแก่น", DefaultFuzzyThreshold)
	assert.True(t, ok)
	assert.Equal(t, "Partial province match: ขอนแก่น", reason)
}

func TestProvinceFuzzyMatch(t *testing.T) {
	p := testProvinces()

	// One rune dropped mid-word: no substring relation, fuzzy tier catches it
	ok, reason := p.Match("เชยงใหม่", DefaultFuzzyThreshold)
	assert.True(t, ok)
	assert.Contains(t, reason, "Fuzzy province match: เชียงใหม่")

	t.Logf("Fuzzy reason: %s", reason)
}

func TestProvinceExactBeatsFuzzy(t *testing.T) {
	p := testProvinces()

	// An exact hit must report the exact tier even though fuzzy would
	// also accept it
	ok, reason := p.Match("เชียงราย", DefaultFuzzyThreshold)
	assert.True(t, ok)
	assert.Equal(t, "Exact province match: เชียงราย", reason)
}

func TestProvinceNoMatch(t *testing.T) {
	p := testProvinces()

	ok, reason := p.Match("ภูเก็ต", DefaultFuzzyThreshold)
	assert.False(t, ok)
	assert.Equal(t, "Not a recognized Thai province", reason)

	ok, _ = p.Match("abc", DefaultFuzzyThreshold)
	assert.False(t, ok)
}

func TestLoadProvinceList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "provinces.txt")
	content := "กรุงเทพมหานคร\n\n  เชียงใหม่  \n\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	p, err := LoadProvinceList(path)
	require.NoError(t, err)

	assert.Equal(t, 2, p.Len())
	assert.Equal(t, []string{"กรุงเทพมหานคร", "เชียงใหม่"}, p.Names())
}

func TestLoadProvinceListMissingFile(t *testing.T) {
	p, err := LoadProvinceList(filepath.Join(t.TempDir(), "missing.txt"))
	require.NoError(t, err)

	assert.Equal(t, 0, p.Len())

	// An empty list matches nothing
	ok, reason := p.Match("เชียงใหม่", DefaultFuzzyThreshold)
	assert.False(t, ok)
	assert.Equal(t, "Not a recognized Thai province", reason)
}
