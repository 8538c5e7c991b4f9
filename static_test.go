package gateway

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(name), 0755))
	require.NoError(t, os.WriteFile(name, []byte(content), 0644))
}

func TestServeAlias(t *testing.T) {
	r := require.New(t)
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "photo.jpg"), "jpeg")
	writeTestFile(t, filepath.Join(dir, "recipes", "soup.png"), "png")

	route := &Route{Prefix: "/media/", Kind: KindAlias, Target: dir}

	rec := httptest.NewRecorder()
	serveAlias(route, rec, httptest.NewRequest("GET", "/media/photo.jpg", nil))
	r.Equal(200, rec.Code)
	r.Equal("jpeg", rec.Body.String())

	rec = httptest.NewRecorder()
	serveAlias(route, rec, httptest.NewRequest("GET", "/media/recipes/soup.png", nil))
	r.Equal(200, rec.Code)
	r.Equal("png", rec.Body.String())

	// no fallback on an alias route
	rec = httptest.NewRecorder()
	serveAlias(route, rec, httptest.NewRequest("GET", "/media/missing.jpg", nil))
	r.Equal(404, rec.Code)
	r.Equal("File Not Found\n", rec.Body.String())

	// a directory is not servable
	rec = httptest.NewRecorder()
	serveAlias(route, rec, httptest.NewRequest("GET", "/media/recipes/", nil))
	r.Equal(404, rec.Code)
}

func TestServeStaticFallback(t *testing.T) {
	r := require.New(t)
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "index.html"), "index")
	writeTestFile(t, filepath.Join(dir, "build.js"), "js")

	route := &Route{Prefix: "/", Kind: KindStatic, Target: dir, Fallback: "index.html",
		IndexFiles: []string{"index.html", "index.htm"}}

	// a real file is served as-is
	rec := httptest.NewRecorder()
	serveStatic(route, rec, httptest.NewRequest("GET", "/build.js", nil))
	r.Equal(200, rec.Code)
	r.Equal("js", rec.Body.String())

	// the root resolves through the index files
	rec = httptest.NewRecorder()
	serveStatic(route, rec, httptest.NewRequest("GET", "/", nil))
	r.Equal(200, rec.Code)
	r.Equal("index", rec.Body.String())

	// a miss serves the fallback with status OK
	rec = httptest.NewRecorder()
	serveStatic(route, rec, httptest.NewRequest("GET", "/recipes/42", nil))
	r.Equal(200, rec.Code)
	r.Equal("index", rec.Body.String())
}

func TestServeStaticPrefixedFallback(t *testing.T) {
	r := require.New(t)
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "api", "docs", "redoc.html"), "redoc")

	route := &Route{Prefix: "/api/docs/", Kind: KindStatic, Target: dir, Fallback: "redoc.html"}

	// the fallback resolves under the route's prefix within the root
	rec := httptest.NewRecorder()
	serveStatic(route, rec, httptest.NewRequest("GET", "/api/docs/nonexistent", nil))
	r.Equal(200, rec.Code)
	r.Equal("redoc", rec.Body.String())
}

func TestServeStaticNoFallback(t *testing.T) {
	r := require.New(t)
	dir := t.TempDir()

	route := &Route{Prefix: "/", Kind: KindStatic, Target: dir}

	rec := httptest.NewRecorder()
	serveStatic(route, rec, httptest.NewRequest("GET", "/missing", nil))
	r.Equal(404, rec.Code)
}

func TestResolveUnder(t *testing.T) {
	r := require.New(t)

	r.Equal(filepath.Join("/srv/www", "a", "b"), resolveUnder("/srv/www", "a/b"))
	r.Equal(filepath.Join("/srv/www", "b"), resolveUnder("/srv/www", "a/../b"))

	// ".." segments cannot escape the directory
	r.Equal(filepath.Join("/srv/www", "secret"), resolveUnder("/srv/www", "../../secret"))
	r.Equal("/srv/www", resolveUnder("/srv/www", ".."))
}
