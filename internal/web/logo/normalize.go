// Package logo resolve o visual de um time: o PNG em /static/images/teams
// quando existe, ou um badge colorido com a inicial do nome.
package logo

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf16"
)

var (
	// equivalente ao \s do JavaScript (inclui NBSP, BOM e separadores Unicode)
	whitespaceRun = regexp.MustCompile(`[\s\x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}]+`)
	invalidChars  = regexp.MustCompile(`[^a-z0-9_]`)
)

// Normalize converte o nome do time no componente de caminho do asset:
// minúsculas, espaços viram "_" e o resto fora de [a-z0-9_] é removido.
// Acentos são descartados, não transliterados ("FC Ünïon!" -> "fc_nion").
func Normalize(teamName string) string {
	s := strings.ToLower(teamName)
	s = whitespaceRun.ReplaceAllString(s, "_")
	return invalidChars.ReplaceAllString(s, "")
}

// AssetPath devolve o caminho público do PNG do time
func AssetPath(teamName string) string {
	return "/static/images/teams/" + Normalize(teamName) + ".png"
}

// Hue calcula o matiz do badge sobre as unidades UTF-16 do nome com a mesma
// aritmética do script da página: só o deslocamento h<<5 é truncado para
// int32; a subtração e a soma correm sem truncar. O resto é dobrado para [0, 360).
func Hue(teamName string) int {
	var h int64
	for _, c := range utf16.Encode([]rune(teamName)) {
		h = int64(c) + int64(int32(uint32(h))<<5) - h
	}
	deg := int(h % 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Background é a cor de fundo do badge no formato CSS
func Background(teamName string) string {
	return fmt.Sprintf("hsl(%d, 70%%, 60%%)", Hue(teamName))
}

// Initial é a primeira letra do nome em maiúscula ("" para nome vazio)
func Initial(teamName string) string {
	for _, r := range teamName {
		return strings.ToUpper(string(r))
	}
	return ""
}
