package server

import (
	stderrors "errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/vango-dev/hiccup/internal/dev"
	"github.com/vango-dev/hiccup/internal/errors"
	"github.com/vango-dev/hiccup/pkg/document"
	"github.com/vango-dev/hiccup/pkg/middleware"
	"github.com/vango-dev/hiccup/pkg/node"
	"github.com/vango-dev/hiccup/pkg/page"
)

// IndexName is the document served for a directory.
const IndexName = "index"

// handleDocument renders the document for the request path, or serves
// the file itself when it is an asset.
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	file, isDoc := s.resolve(r.URL.Path)
	if file == "" {
		http.NotFound(w, r)
		return
	}
	if !isDoc {
		http.ServeFile(w, r, file)
		return
	}

	html, err := s.renderFile(file, s.live != nil)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusNotFound {
			http.NotFound(w, r)
			return
		}
		middleware.RecordRenderError(r, err)
		s.logger.Warn("render failed", "path", r.URL.Path, "file", file, "error", err)
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	io.WriteString(w, html)
}

// resolve maps a URL path to a file under Root. For "/blog/post" it tries
// blog/post as a directory (index document), then blog/post with every
// document extension, then blog/post as an asset. A trailing ".html" is
// dropped so that links between published pages work in the preview.
func (s *Server) resolve(urlPath string) (file string, isDoc bool) {
	rel := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	rel = strings.TrimSuffix(rel, ".html")
	if isHidden(rel) {
		return "", false
	}
	base := filepath.Join(s.config.Root, filepath.FromSlash(rel))

	if info, err := os.Stat(base); err == nil {
		if !info.IsDir() {
			return base, document.IsDocument(base)
		}
		base = filepath.Join(base, IndexName)
	}

	for _, ext := range document.Extensions() {
		candidate := base + ext
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

func isHidden(rel string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

// renderFile decodes and renders a document. Pages get the configured
// defaults; with reload the client script is appended.
func (s *Server) renderFile(file string, reload bool) (string, error) {
	n, err := document.DecodeFile(file)
	if err != nil {
		return "", err
	}

	var script node.Node
	if reload {
		script = page.InlineScript(dev.ClientScript)
	}

	if p, ok := n.(*page.HTML5); ok {
		p.WithDefaults(s.config.Defaults)
		if script != nil {
			p.Head = append(p.Head, script)
		}
		return s.config.Renderer.RenderToString(p)
	}
	return s.config.Renderer.RenderToString(n, script)
}

// checkDocument reports whether a changed document still renders.
func (s *Server) checkDocument(file string) error {
	_, err := s.renderFile(file, false)
	return err
}

// statusFor maps a render failure to an HTTP status. Documents that cannot
// be decoded or rendered answer 422.
func statusFor(err error) int {
	if stderrors.Is(err, fs.ErrNotExist) {
		return http.StatusNotFound
	}
	switch errors.CategoryOf(err) {
	case errors.CategoryParse, errors.CategoryNode, errors.CategoryDocument:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
