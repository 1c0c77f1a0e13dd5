package document

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/hiccup/internal/errors"
	"github.com/vango-dev/hiccup/pkg/node"
)

// Format is a document encoding.
type Format string

const (
	JSON        Format = "json"
	MessagePack Format = "msgpack"
)

// extensions maps file extensions to formats, in lookup order.
var extensions = []struct {
	ext    string
	format Format
}{
	{".json", JSON},
	{".msgpack", MessagePack},
	{".mp", MessagePack},
}

// Extensions returns the document file extensions in lookup order.
func Extensions() []string {
	out := make([]string, len(extensions))
	for i, e := range extensions {
		out[i] = e.ext
	}
	return out
}

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if e.ext == ext {
			return e.format, nil
		}
	}
	return "", errors.New("E042").WithDetailf("%s has no document extension", path)
}

// IsDocument reports whether path has a document extension.
func IsDocument(path string) bool {
	_, err := FormatOf(path)
	return err == nil
}

// ParseFormat parses a format name: json, msgpack or mp.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return JSON, nil
	case "msgpack", "mp", "messagepack":
		return MessagePack, nil
	}
	return "", errors.New("E042").WithDetailf("unknown format %q", name)
}

// Decode reads one document from r. The result is a node, or a
// *page.HTML5 when the document describes a page.
func Decode(r io.Reader, format Format) (node.Node, error) {
	var (
		v   any
		err error
	)
	switch format {
	case JSON:
		v, err = readJSON(r)
	case MessagePack:
		v, err = readMsgpack(r)
	default:
		return nil, errors.New("E042").WithDetailf("unknown format %q", string(format))
	}
	if err != nil {
		return nil, errors.New("E040").Wrap(err)
	}
	return toTop(v)
}

// DecodeBytes decodes a document held in memory.
func DecodeBytes(data []byte, format Format) (node.Node, error) {
	return Decode(bytes.NewReader(data), format)
}

// DecodeFile decodes the document at path, choosing the format from its
// extension. A missing file yields an error matching fs.ErrNotExist.
func DecodeFile(path string) (node.Node, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New("E040").WithDetailf("cannot open %s", path).Wrap(err)
	}
	defer f.Close()

	n, err := Decode(f, format)
	if err != nil {
		if he, ok := err.(*errors.Error); ok {
			he.Detail = strings.TrimSuffix(path+": "+he.Detail, ": ")
		}
		return nil, err
	}
	return n, nil
}
