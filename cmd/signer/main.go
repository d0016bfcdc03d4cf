// Package main provides the signer command-line tool for writing and
// checking dataset checksum manifests.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"newsharvest/internal/dataset"
	"newsharvest/pkg/metadata"
)

func main() {
	dir := flag.String("dir", "", "Entity dataset directory (e.g., data/Apple)")
	verify := flag.Bool("verify", false, "Verify the existing manifest instead of signing")
	flag.Parse()

	if *dir == "" {
		fmt.Println("Usage: signer -dir <dataset dir> [-verify]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *verify {
		if _, err := metadata.Verify(*dir); err != nil {
			log.Fatalf("❌ Verification failed: %v\n", err)
		}

		fmt.Printf("✅ %s matches its manifest\n", *dir)

		return
	}

	files, err := filepath.Glob(filepath.Join(*dir, "headlines.*"))
	if err != nil || len(files) == 0 {
		log.Fatalf("❌ No dataset files in %s\n", *dir)
	}

	records := 0
	names := make([]string, 0, len(files))

	for _, f := range files {
		recs, readErr := dataset.ReadFile(f)
		if readErr != nil {
			log.Fatalf("❌ %v\n", readErr)
		}

		records = max(records, len(recs))
		names = append(names, filepath.Base(f))
	}

	fmt.Println("✍️  Signing dataset...")

	m, err := metadata.Sign(*dir, filepath.Base(*dir), records, names...)
	if err != nil {
		log.Fatalf("❌ %v\n", err)
	}

	for _, f := range m.Files {
		fmt.Printf("  %s  %s\n", f.Hash, f.Name)
	}

	fmt.Printf("✅ Signed %d files to %s\n", len(m.Files), filepath.Join(*dir, metadata.ManifestName))
}
