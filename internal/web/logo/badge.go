package logo

import (
	"bytes"
	"fmt"
	"html"
)

// BadgeSVG gera o logo placeholder 200x200: círculo na cor do time com a inicial em branco
func BadgeSVG(teamName string) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="200" height="200" viewBox="0 0 200 200">`)
	fmt.Fprintf(&b, `<circle cx="100" cy="100" r="90" fill="%s"/>`, Background(teamName))
	fmt.Fprintf(&b, `<text x="100" y="100" dy="0.35em" text-anchor="middle" font-family="Arial, sans-serif" font-size="100" fill="#fff">%s</text>`,
		html.EscapeString(Initial(teamName)))
	b.WriteString(`</svg>`)
	return b.Bytes()
}
