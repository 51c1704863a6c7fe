package preset

import "github.com/jorge-barreto/monozip/internal/fileblocks"

// Merge appends the files of the preset named key after entries. An empty or
// unknown key leaves entries unchanged.
func Merge(entries []fileblocks.FileBlock, c *Catalog, key string) []fileblocks.FileBlock {
	p, ok := c.Lookup(key)
	if !ok {
		return entries
	}
	out := make([]fileblocks.FileBlock, 0, len(entries)+len(p.Files))
	out = append(out, entries...)
	for _, f := range p.Files {
		out = append(out, fileblocks.FileBlock{Path: f.Path, Content: f.Content})
	}
	return out
}
