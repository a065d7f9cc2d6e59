package hostfilter

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_DefaultAllowsAll(t *testing.T) {
	f := New()

	assert.True(t, f.IsAllowed("a.com"))
	assert.True(t, f.IsAllowed("anything.example.org"))
}

func TestFilter_ExcludeDenies(t *testing.T) {
	f := New()
	f.Exclude("a.com")

	assert.False(t, f.IsAllowed("a.com"))
	assert.True(t, f.IsAllowed("b.com"))
}

func TestFilter_OnlyRestricts(t *testing.T) {
	f := New()
	f.AllowOnly("a.com")

	assert.True(t, f.IsAllowed("a.com"))
	assert.False(t, f.IsAllowed("b.com"))
}

func TestFilter_ExcludeWinsOverOnly(t *testing.T) {
	f := New()
	f.AllowOnly("a.com")
	f.Exclude("a.com")

	assert.False(t, f.IsAllowed("a.com"))
}

func TestFilter_GlobPatterns(t *testing.T) {
	f := New()
	f.Exclude("*.internal")

	assert.False(t, f.IsAllowed("db.internal"))
	assert.False(t, f.IsAllowed("cache.INTERNAL"))
	assert.True(t, f.IsAllowed("internal"))
	assert.True(t, f.IsAllowed("api.test"))

	f.AllowOnly("*.test")
	assert.True(t, f.IsAllowed("api.test"))
	assert.False(t, f.IsAllowed("api.example"))
}

func TestFilter_CaseInsensitive(t *testing.T) {
	f := New()
	f.Exclude("API.Test")

	assert.False(t, f.IsAllowed("api.test"))
	assert.False(t, f.IsAllowed("API.TEST"))
}

func TestFilter_RemoveAndReset(t *testing.T) {
	f := New()
	f.AllowOnly("a.com", "b.com")
	f.Exclude("c.com")

	f.RemoveOnly("a.com")
	assert.Equal(t, []string{"b.com"}, f.OnlyHosts())
	assert.False(t, f.IsAllowed("a.com"))

	f.RemoveExclude("c.com")
	assert.Empty(t, f.ExcludeHosts())

	f.Reset()
	assert.True(t, f.IsAllowed("a.com"))
	assert.Empty(t, f.OnlyHosts())
}

func TestFilter_AppendUniqueIgnoresDuplicatesAndEmpty(t *testing.T) {
	f := New()
	f.Exclude("a.com", "a.com", "")

	assert.Equal(t, []string{"a.com"}, f.ExcludeHosts())
}

func TestFilter_ConcurrentAccess(t *testing.T) {
	f := New()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				f.Exclude("a.com")
				f.RemoveExclude("a.com")
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				f.IsAllowed("a.com")
				f.IsAllowed("b.com")
			}
		}()
	}
	wg.Wait()
}
