package otutab

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenInputGzip(t *testing.T) {
	dir, err := os.MkdirTemp("", "otutab")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	zw.Write([]byte(">Cluster 0\n0\t1nt, >A_1... *\n"))
	zw.Close()

	path := filepath.Join(dir, "otus.clstr.gz")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	r, err := OpenInput(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(got), ">Cluster 0") {
		t.Errorf("Expected decompressed content, got %q", got)
	}
}

func TestOpenInputPlainShortFile(t *testing.T) {
	dir, err := os.MkdirTemp("", "otutab")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "tiny.tsv")
	if err := os.WriteFile(path, []byte("a\n"), 0644); err != nil {
		t.Fatal(err)
	}

	r, err := OpenInput(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "a\n" {
		t.Errorf("Expected the file unchanged, got %q", got)
	}
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestOpenInputEmptyFile(t *testing.T) {
	r, err := OpenInput(writeTemp(t, "empty.clstr", nil), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no content, got %q", got)
	}
}

func TestOpenInputZlib(t *testing.T) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	zw.Write([]byte("OTU_1\tA_1\n"))
	zw.Close()

	r, err := OpenInput(writeTemp(t, "otu_map.tsv.zz", buf.Bytes()), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "OTU_1\tA_1\n" {
		t.Errorf("Expected decompressed content, got %q", got)
	}
}

func TestOpenInputUnixCompress(t *testing.T) {
	data := []byte{0x1f, 0x9d, 0x90, 0x4f, 0x54, 0x55, 0x5f, 0x31}
	if dt := DetectDataType(data); dt != DataTypeZ {
		t.Fatalf("Expected unix compress, got %v", dt)
	}

	_, err := OpenInput(writeTemp(t, "otu_map.tsv.Z", data), nil)
	if !errors.Is(err, ErrUnsupportedCompression) {
		t.Errorf("Expected ErrUnsupportedCompression, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "otu_map.tsv.Z") {
		t.Errorf("Expected the error to name the path, got %v", err)
	}
}

func TestOpenInputMissing(t *testing.T) {
	if _, err := OpenInput("/no/such/otu_map.tsv", nil); err == nil || !strings.Contains(err.Error(), "/no/such/otu_map.tsv") {
		t.Errorf("Expected an error naming the path, got %v", err)
	}

	if _, err := OpenInput("gs://bucket/otu_map.tsv", nil); err == nil {
		t.Error("Expected gs:// without a client to fail")
	}
}

func TestDetectDataType(t *testing.T) {
	if dt := DetectDataType([]byte{0x1f, 0x8b, 0x08, 0, 0, 0}); dt != DataTypeGzip {
		t.Errorf("Expected gzip, got %v", dt)
	}
	if dt := DetectDataType([]byte("OT")); dt != DataTypeNoCompression {
		t.Errorf("Expected no compression, got %v", dt)
	}
}

func TestNeedsStorageClient(t *testing.T) {
	if NeedsStorageClient("otu_map.tsv", "tax.txt") {
		t.Error("Expected local paths not to need a client")
	}
	if !NeedsStorageClient("otu_map.tsv", "gs://bucket/tax.txt") {
		t.Error("Expected a gs:// path to need a client")
	}
}
