package logo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"
)

// FSProber sonda os assets num diretório local (o mesmo servido em /static)
type FSProber struct {
	FS fs.FS // raiz equivalente a /static
}

func NewFSProber(fsys fs.FS) *FSProber { return &FSProber{FS: fsys} }

func (p *FSProber) Exists(_ context.Context, path string) (bool, error) {
	name := strings.TrimPrefix(strings.TrimPrefix(path, "/"), "static/")
	fi, err := fs.Stat(p.FS, name)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !fi.IsDir(), nil
}

// HTTPProber sonda com HEAD num host de assets remoto (CDN)
type HTTPProber struct {
	BaseURL string
	HTTP    *http.Client
}

func NewHTTPProber(base string) *HTTPProber {
	return &HTTPProber{
		BaseURL: strings.TrimRight(base, "/"),
		HTTP:    &http.Client{Timeout: 2 * time.Second},
	}
}

func (p *HTTPProber) Exists(ctx context.Context, path string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.BaseURL+path, nil)
	if err != nil {
		return false, err
	}
	res, err := p.HTTP.Do(req)
	if err != nil {
		return false, err
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode >= 200 && res.StatusCode < 300:
		return true, nil
	case res.StatusCode == http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("logo probe http %d", res.StatusCode)
	}
}
