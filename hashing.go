package rancher

import (
	"github.com/cespare/xxhash/v2"
	g "go.hasen.dev/generic"
)

func Hash[T any](h *xxhash.Digest, v *T) {
	h.Write(g.UnsafeRawBytes(v))
}

func HashString(h *xxhash.Digest, s string) {
	h.WriteString(s)
}

// SurfacesHash fingerprints a surface list. The driver compares it with the previous
// frame to decide whether anything needs repainting.
func SurfacesHash(ss []Surface) uint64 {
	h := xxhash.New()
	for i := range ss {
		s := &ss[i]
		Hash(h, &s.Kind)
		Hash(h, &s.Rect)
		Hash(h, &s.Visible)
		Hash(h, &s.Angle)
		Hash(h, &s.Color)
		Hash(h, &s.Shadow)
		Hash(h, &s.Cell)
		// strings are hashed by content; their headers change every frame
		HashString(h, s.Text)
		HashString(h, s.TextStyle.Font.Family)
		HashString(h, s.TextStyle.Font.Path)
		Hash(h, &s.TextStyle.Font.Index)
		Hash(h, &s.TextStyle.Font.Mode)
		Hash(h, &s.TextStyle.Color)
		Hash(h, &s.TextStyle.Pad)
		Hash(h, &s.TextStyle.Size)
		Hash(h, &s.TextStyle.Spacing)
		Hash(h, &s.Source.Kind)
		HashString(h, s.Source.Path)
	}
	var n = len(ss)
	Hash(h, &n)
	return h.Sum64()
}
