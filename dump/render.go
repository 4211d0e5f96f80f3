package dump

import (
	"fmt"

	"github.com/tdewolff/minify/v2"
	mjs "github.com/tdewolff/minify/v2/js"
)

const mediaTypeJS = "application/javascript"

// Render minifies src and returns the result verbatim, with no framing
// around it. Comments are always dropped. With mangle set, local identifiers
// are additionally renamed; the renaming is scope and frequency driven and
// deterministic for a fixed input, which is the only contract the snapshot
// relies on. Without mangle, variable names survive untouched.
func Render(src []byte, mangle bool) (string, error) {
	m := minify.New()
	m.Add(mediaTypeJS, &mjs.Minifier{KeepVarNames: !mangle})
	out, err := m.String(mediaTypeJS, string(src))
	if err != nil {
		return "", fmt.Errorf("failed to minify: %w", err)
	}
	return out, nil
}
