package logo

import (
	"context"

	"go.uber.org/zap"

	"github.com/radieske/match-predictor/internal/shared/logger"
)

// Tipos de visual
const (
	KindImage = "image"
	KindBadge = "badge"
)

// Visual descreve o que o adaptador deve desenhar no elemento do logo
type Visual struct {
	Kind       string `json:"kind"`
	Src        string `json:"src,omitempty"`
	Alt        string `json:"alt,omitempty"`
	Class      string `json:"class,omitempty"`
	Glyph      string `json:"glyph,omitempty"`
	Background string `json:"background"`
}

// Prober verifica se o asset existe; ausência é resultado normal (false, nil)
type Prober interface {
	Exists(ctx context.Context, path string) (bool, error)
}

// Resolver aplica a regra imagem-ou-badge
type Resolver struct {
	Prober Prober
	Log    *zap.Logger
}

func NewResolver(p Prober, log *zap.Logger) *Resolver {
	return &Resolver{Prober: p, Log: logger.Named(log, "logo")}
}

// Resolve nunca falha: qualquer erro de sondagem cai no badge
func (r *Resolver) Resolve(ctx context.Context, teamName string) Visual {
	path := AssetPath(teamName)

	if r.Prober != nil {
		ok, err := r.Prober.Exists(ctx, path)
		if err != nil {
			r.Log.Debug("logo probe failed", zap.String("path", path), zap.Error(err))
		}
		if ok && err == nil {
			return Image(teamName)
		}
	}
	return Badge(teamName)
}

// Image é o visual de logo carregado com sucesso
func Image(teamName string) Visual {
	return Visual{
		Kind:       KindImage,
		Src:        AssetPath(teamName),
		Alt:        teamName + " logo",
		Class:      "team-logo-img",
		Background: "transparent",
	}
}

// Badge é o fallback determinístico: inicial sobre fundo derivado do nome
func Badge(teamName string) Visual {
	return Visual{
		Kind:       KindBadge,
		Glyph:      Initial(teamName),
		Background: Background(teamName),
	}
}
