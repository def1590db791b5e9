// Package config is the key=value settings store behind the shell's
// config-get/config-set commands and the published-data reads (get,
// set_temp). Values live in a dotenv-format file next to the snapshot,
// so a capture carries its device configuration with it.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Store reads and writes one dotenv file. Reads load the file fresh on
// every call; the shell is the only writer, so there is no caching to
// invalidate.
type Store struct {
	path string
}

// NewStore returns a store backed by the file at path. The file does
// not have to exist yet; a missing file reads as an empty store.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Get returns the value for key and whether it was present. Keys are
// case-insensitive and stored upper-cased.
func (s *Store) Get(key string) (string, bool) {
	vals, err := godotenv.Read(s.path)
	if err != nil {
		return "", false
	}
	v, ok := vals[normalize(key)]
	return v, ok
}

// Set stores key=value, rewriting the backing file.
func (s *Store) Set(key, value string) error {
	vals, err := godotenv.Read(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		vals = map[string]string{}
	}
	vals[normalize(key)] = value
	return godotenv.Write(vals, s.path)
}

// All returns every key=value pair in the store.
func (s *Store) All() map[string]string {
	vals, err := godotenv.Read(s.path)
	if err != nil {
		return map[string]string{}
	}
	return vals
}

func normalize(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}
