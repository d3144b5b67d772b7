// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command kar creates, lists and extracts kar archives.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/devblok/glowl/utility/kar"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/mmap"
)

func currentUserName() string {
	u, err := user.Current()
	if err != nil {
		return "unknown"
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

var (
	author   = flag.String("author", currentUserName(), "Set the author of the package when compressing")
	version  = flag.Int64("version", 1, "Archive version number to create it with")
	extract  = flag.String("e", "", "Extract the archive given")
	list     = flag.String("l", "", "List the contents of the archive given")
	compress = flag.String("c", "", "Compress the given file/folder")
	dstFile  = flag.String("f", "out.kar", "Destination file when compressing, destination folder when extracting")
	silent   = flag.Bool("s", false, "Silent")
)

func main() {
	flag.Parse()
	if *silent {
		log.SetLevel(log.WarnLevel)
	}

	var ops int
	for _, op := range []string{*extract, *list, *compress} {
		if op != "" {
			ops++
		}
	}
	if ops > 1 {
		log.Fatal(errors.New("only one operation at a time"))
	}

	var err error
	switch {
	case *compress != "":
		err = compressFiles(*compress, *dstFile)
	case *extract != "":
		dst := *dstFile
		if dst == "out.kar" {
			dst = "."
		}
		err = withArchive(*extract, func(ar *kar.Archive) error {
			return extractAll(ar, dst)
		})
	case *list != "":
		err = withArchive(*list, func(ar *kar.Archive) error {
			return printIndex(os.Stdout, ar)
		})
	default:
		flag.PrintDefaults()
	}
	if err != nil {
		log.Fatal(err)
	}
}

func compressFiles(src, dst string) error {
	if _, err := os.Stat(dst); err == nil {
		return errors.New("destination file exists, will not overwrite")
	}

	builder, err := kar.NewBuilder(kar.Header{
		Author:      *author,
		DateCreated: time.Now().Unix(),
		Version:     *version,
	})
	if err != nil {
		return err
	}
	defer builder.Close()

	if err := addFiles(builder, src); err != nil {
		return err
	}

	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	written, err := builder.WriteTo(f)
	if err != nil {
		f.Close()
		return err
	}
	log.WithFields(log.Fields{
		"archive": dst,
		"entries": builder.Len(),
		"bytes":   written,
	}).Info("Archive written")
	return f.Close()
}

// addFiles adds every regular file under root, named by its slash
// separated path relative to root.
func addFiles(builder *kar.Builder, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	base := root
	if !info.IsDir() {
		base = filepath.Dir(root)
	}

	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		name, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		log.WithField("file", name).Debug("Adding")
		return builder.Add(filepath.ToSlash(name), f)
	})
}

func withArchive(path string, fn func(*kar.Archive) error) error {
	r, err := mmap.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()
	ar, err := kar.Open(r)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return fn(ar)
}

func extractAll(ar *kar.Archive, dst string) error {
	for _, entry := range ar.Index() {
		target := filepath.Join(dst, filepath.FromSlash(entry.Name))
		if rel, err := filepath.Rel(dst, target); err != nil || strings.HasPrefix(rel, "..") {
			return fmt.Errorf("%s: entry escapes destination", entry.Name)
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		if err := extractEntry(ar, entry.Name, target); err != nil {
			return err
		}
		log.WithField("file", target).Debug("Extracted")
	}
	return nil
}

func extractEntry(ar *kar.Archive, name, target string) error {
	r, err := ar.Open(name)
	if err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printIndex(w io.Writer, ar *kar.Archive) error {
	header := ar.Header()
	fmt.Fprintf(w, "author: %s, version: %d, created: %s\n",
		header.Author, header.Version, time.Unix(header.DateCreated, 0).Format(time.RFC3339))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tCOMPRESSED")
	for _, e := range header.Index {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", e.Name, e.Size, e.CompressedSize)
	}
	return tw.Flush()
}
