package display

import (
	"fmt"
	"io"

	"github.com/backmassage/seq2vid/internal/term"
)

// Banner is the seq2vid ASCII art, shared by the check command and the
// root help text.
const Banner = `               ____        _     _
 ___  ___  __ |___ \__   _(_) __| |
/ __|/ _ \/ _` + "`" + ` | __) \ \ / / |/ _` + "`" + ` |
\__ \  __/ (_| |/ __/ \ V /| | (_| |
|___/\___|\__, |_____| \_/ |_|\__,_|
             |_|
`

// PrintBanner prints Banner to w; uses Magenta if colors are enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, term.Magenta, Banner, term.NC)
}
