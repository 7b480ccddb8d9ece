package deploy

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestPack_RoundTrip(t *testing.T) {
	src := t.TempDir()
	if err := os.MkdirAll(filepath.Join(src, "static", "img"), 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"index.html":            "<html>home</html>",
		"publications.html":     "<html>pubs</html>",
		"static/img/avatar.png": "binary-ish",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(src, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	if err := Pack(context.Background(), src, &buf); err != nil {
		t.Fatalf("Pack() error: %v", err)
	}

	gz, err := gzip.NewReader(&buf)
	if err != nil {
		t.Fatalf("gzip.NewReader() error: %v", err)
	}
	tr := tar.NewReader(gz)

	got := map[string]string{}
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("reading archive: %v", err)
		}
		if hdr.Typeflag == tar.TypeDir {
			continue
		}
		body, err := io.ReadAll(tr)
		if err != nil {
			t.Fatal(err)
		}
		got[hdr.Name] = string(body)
	}

	for name, want := range files {
		if got[name] != want {
			t.Errorf("archive entry %q = %q, want %q", name, got[name], want)
		}
	}
	if len(got) != len(files) {
		t.Errorf("archive holds %d files, want %d", len(got), len(files))
	}
}

func TestPack_Cancelled(t *testing.T) {
	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "index.html"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := Pack(ctx, src, io.Discard); err == nil {
		t.Error("Pack() with cancelled context should fail")
	}
}

func TestUploadCommand(t *testing.T) {
	cmd := uploadCommand("/var/www/site")
	for _, want := range []string{"mkdir -p '/var/www/site'", "rm -rf '/var/www/site'/*", "tar -xzf - -C '/var/www/site'"} {
		if !strings.Contains(cmd, want) {
			t.Errorf("uploadCommand() = %q, missing %q", cmd, want)
		}
	}
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/var/www", "'/var/www'"},
		{"/srv/o'neil", `'/srv/o'\''neil'`},
	}
	for _, tt := range tests {
		if got := shellQuote(tt.input); got != tt.want {
			t.Errorf("shellQuote(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNewClient_NoAgent(t *testing.T) {
	t.Setenv("SSH_AUTH_SOCK", "")

	if _, err := NewClient(zerolog.Nop()); err == nil {
		t.Error("NewClient() without an agent should fail")
	}
}
