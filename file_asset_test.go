// file_asset_test.go - restricted-directory load/save
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

package texcache

import (
	"bytes"
	"os"
	"testing"
)

func TestAssetStoreSaveThenLoadRoundTrips(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "asset_test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	store := NewAssetStore(tmpDir)
	content := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	if err := store.SaveAsset("textures/foo.bin", content); err != nil {
		t.Fatal(err)
	}

	got, err := store.LoadAsset("textures/foo.bin")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, content) {
		t.Fatalf("round trip mismatch: got %v, want %v", got, content)
	}
}

func TestAssetStoreLoadMissingReturnsNotFound(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "asset_test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	store := NewAssetStore(tmpDir)
	if _, err := store.LoadAsset("nope.bin"); err != ErrAssetNotFound {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestAssetStoreRejectsPathTraversal(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "asset_test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	store := NewAssetStore(tmpDir)
	if _, err := store.LoadAsset("../../etc/passwd"); err != ErrAssetPathTraversal {
		t.Fatalf("expected ErrAssetPathTraversal, got %v", err)
	}
}
