// Package teams carrega o catálogo de times exibido no formulário.
package teams

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissing indica que o arquivo do catálogo não existe
var ErrMissing = errors.New("teams catalog not found")

// Catalog é o formato do teams.yaml
type Catalog struct {
	League string   `yaml:"league"`
	Teams  []string `yaml:"teams"`
}

// Load lê o catálogo do disco
func Load(path string) (Catalog, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Catalog{}, ErrMissing
	}
	if err != nil {
		return Catalog{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(b)
}

// Parse decodifica o YAML; nomes vazios e duplicados são descartados e a
// lista sai ordenada
func Parse(b []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse teams catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(c.Teams))
	out := make([]string, 0, len(c.Teams))
	for _, t := range c.Teams {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	c.Teams = out
	return c, nil
}
