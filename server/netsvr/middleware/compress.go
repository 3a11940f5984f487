package middleware

import (
	"bufio"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// encoder 是 gzip.Writer 與 zstd.Encoder 的共同行為
type encoder interface {
	io.Writer
	Flush() error
	Close() error
	Reset(w io.Writer)
}

type codec struct {
	name string
	pool *sync.Pool
}

// 依優先序：zstd 先於 gzip
var codecs = []codec{
	{name: "zstd", pool: &sync.Pool{New: func() any {
		zw, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest), zstd.WithEncoderConcurrency(1))
		if err != nil {
			panic(err)
		}
		return zw
	}}},
	{name: "gzip", pool: &sync.Pool{New: func() any {
		gw, _ := gzip.NewWriterLevel(io.Discard, gzip.DefaultCompression)
		return gw
	}}},
}

// Compression 依 Accept-Encoding 以 zstd 或 gzip 壓縮回應。
// HEAD、WebSocket 升級與已帶 Content-Encoding 的回應不處理。
func Compression(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead || isUpgrade(r) || w.Header().Get("Content-Encoding") != "" {
			next.ServeHTTP(w, r)
			return
		}
		ae := r.Header.Get("Accept-Encoding")
		for _, c := range codecs {
			if accepts(ae, c.name) {
				serveEncoded(w, r, next, c)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func serveEncoded(w http.ResponseWriter, r *http.Request, next http.Handler, c codec) {
	w.Header().Set("Content-Encoding", c.name)
	w.Header().Add("Vary", "Accept-Encoding")

	enc := c.pool.Get().(encoder)
	enc.Reset(w)
	cw := &compressWriter{ResponseWriter: w, enc: enc}
	defer func() {
		// 無 body 的回應不能收到壓縮 footer
		if cw.bypass {
			enc.Reset(io.Discard)
		}
		_ = enc.Close()
		c.pool.Put(enc)
	}()
	next.ServeHTTP(cw, r)
}

func isUpgrade(r *http.Request) bool {
	return strings.Contains(strings.ToLower(r.Header.Get("Connection")), "upgrade") ||
		r.Header.Get("Upgrade") != ""
}

// accepts 判斷 Accept-Encoding 是否接受 enc；"gzip;q=0" 視為拒絕，"*" 視為接受。
func accepts(header, enc string) bool {
	wildcard := false
	for _, part := range strings.Split(header, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		name = strings.ToLower(strings.TrimSpace(name))
		if name != enc && name != "*" {
			continue
		}
		ok := !zeroQ(params)
		if name == enc {
			return ok
		}
		wildcard = ok
	}
	return wildcard
}

func zeroQ(params string) bool {
	for _, p := range strings.Split(params, ";") {
		k, v, found := strings.Cut(strings.TrimSpace(p), "=")
		if !found || strings.ToLower(strings.TrimSpace(k)) != "q" {
			continue
		}
		v = strings.TrimSpace(v)
		return strings.HasPrefix(v, "0") && strings.Trim(v, "0.") == ""
	}
	return false
}

// 1xx / 204 / 304
func noBody(code int) bool {
	return (code >= 100 && code < 200) || code == http.StatusNoContent || code == http.StatusNotModified
}

type compressWriter struct {
	http.ResponseWriter
	enc    encoder
	bypass bool // 狀態碼不允許 body 時改為直寫
}

func (cw *compressWriter) WriteHeader(code int) {
	cw.Header().Del("Content-Length")
	if noBody(code) {
		cw.bypass = true
		cw.Header().Del("Content-Encoding")
		cw.Header().Del("Vary")
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *compressWriter) Write(b []byte) (int, error) {
	if cw.bypass {
		return cw.ResponseWriter.Write(b)
	}
	h := cw.Header()
	h.Del("Content-Length")
	if h.Get("Content-Type") == "" {
		h.Set("Content-Type", http.DetectContentType(b))
	}
	return cw.enc.Write(b)
}

func (cw *compressWriter) Flush() {
	if !cw.bypass {
		_ = cw.enc.Flush()
	}
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (cw *compressWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := cw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("underlying response writer does not support Hijacker")
	}
	return hj.Hijack()
}
