package mtar_test

import (
	"fmt"
	"io"
	"log"

	"github.com/meigma/mtar"
	"github.com/meigma/mtar/backend"
)

func Example() {
	mem := backend.NewMemory(nil)

	w, err := mtar.Open(mem, mtar.ModeWrite)
	if err != nil {
		log.Fatal(err)
	}
	msg := []byte("Hello world")
	if err := w.WriteFileHeader("test.txt", uint64(len(msg))); err != nil {
		log.Fatal(err)
	}
	if err := w.WriteData(msg); err != nil {
		log.Fatal(err)
	}
	if err := w.Finalize(); err != nil {
		log.Fatal(err)
	}
	if err := w.Close(); err != nil {
		log.Fatal(err)
	}

	r, err := mtar.Open(backend.NewMemory(mem.Bytes()), mtar.ModeRead)
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()

	h, err := r.Find("test.txt")
	if err != nil {
		log.Fatal(err)
	}
	buf := make([]byte, h.Size)
	if err := r.ReadData(buf); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s (%d bytes): %s\n", h.Name, h.Size, buf)
	// Output: test.txt (11 bytes): Hello world
}

func ExampleArchive_Entries() {
	mem := backend.NewMemory(nil)
	w, _ := mtar.Open(mem, mtar.ModeWrite)
	_ = w.WriteDirHeader("docs/")
	_ = w.WriteFileHeader("docs/a.txt", 1)
	_ = w.WriteData([]byte("a"))
	_ = w.Finalize()

	r, err := mtar.Open(backend.NewMemory(mem.Bytes()), mtar.ModeRead)
	if err != nil {
		log.Fatal(err)
	}
	for h, err := range r.Entries() {
		if err != nil {
			log.Fatal(err)
		}
		data, _ := io.ReadAll(r.Reader(h))
		fmt.Printf("%s %c %q\n", h.Name, h.Typeflag, data)
	}
	// Output:
	// docs/ 5 ""
	// docs/a.txt 0 "a"
}

func ExampleStatusOf() {
	// An archive that starts with the terminator holds no entries.
	_, err := mtar.Open(backend.NewMemory(make([]byte, 1024)), mtar.ModeRead)
	s := mtar.StatusOf(err)
	fmt.Println(int(s), s)
	// Output: -7 null record
}
