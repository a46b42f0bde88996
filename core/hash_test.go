package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	assert.Equal(t, IDFromContent("gladius"), IDFromContent("gladius"))
	assert.NotEqual(t, IDFromContent("gladius"), IDFromContent("Gladius"))
}

func TestHashContent(t *testing.T) {
	h := HashContent([]byte("<html>Gladius</html>"))
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashContent([]byte("<html>Gladius</html>")))
	assert.NotEqual(t, h, HashContent([]byte("<html>Gladius</html> ")))
}

func TestCacheFileName(t *testing.T) {
	name := CacheFileName("https://example.com/boss/gladius")
	assert.Regexp(t, `^[0-9a-f]{16}\.json$`, name)
	assert.Equal(t, name, CacheFileName("https://example.com/boss/gladius"))
	assert.NotEqual(t, name, CacheFileName("https://example.com/boss/adel"))
}

func TestChunkID(t *testing.T) {
	c := Chunk{Type: EntityBoss, Name: "Gladius, Beast of Night", Section: SectionCombat}
	id := c.ID("https://example.com/wiki/Gladius")
	assert.Equal(t, IDFromContent("https://example.com/wiki/Gladius").Hex()+":boss:gladius-beast-of-night:combat", id)
	assert.Equal(t, id, c.ID("https://example.com/wiki/Gladius"), "ids are stable")
	assert.NotEqual(t, id, c.ID("https://mirror.example.com/wiki/Gladius"), "same name from another source")
	assert.Equal(t, "scarlet-rot", Slug("  Scarlet   Rot "))
}
