// Package properties supplies the Gradle project-property store the bridge
// consults for its opt-in flag. Only the subset of the Java properties format
// that Gradle property files use in practice is parsed.
package properties

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/smart24/kotlin-native/internal/xcodeenv"
)

// Store looks up a project property by key.
type Store interface {
	Lookup(key string) (string, bool)
}

// MapStore is an in-memory Store for tests and programmatic defaults.
type MapStore map[string]string

var _ Store = MapStore{}

func (m MapStore) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// FileStore holds properties merged from one or more property files.
type FileStore struct {
	values map[string]string
}

var _ Store = (*FileStore)(nil)

// LoadFiles parses the given property files in order. Missing files are
// skipped (a fresh checkout has no local.properties); later files override
// earlier ones, matching Gradle's local-over-shared precedence.
func LoadFiles(paths ...string) (*FileStore, error) {
	fs := &FileStore{values: make(map[string]string)}
	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		parsed, err := parseFile(path)
		if err != nil {
			return nil, fmt.Errorf("load properties %s: %w", path, err)
		}
		fs.Merge(parsed)
	}
	return fs, nil
}

// Merge overlays the given values, later wins.
func (f *FileStore) Merge(values map[string]string) {
	for k, v := range values {
		f.values[k] = v
	}
}

func (f *FileStore) Lookup(key string) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Len reports the number of distinct keys loaded.
func (f *FileStore) Len() int { return len(f.values) }

// parseFile scans a single properties file. Lines are KEY=VALUE or KEY: VALUE
// with surrounding whitespace trimmed; # and ! start comments. Malformed
// lines are skipped rather than rejected, property files in the wild carry
// all sorts of noise.
func parseFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		key, value, ok := splitProperty(line)
		if !ok || key == "" {
			continue
		}
		values[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return values, nil
}

// splitProperty splits on the first '=' or ':' separator, whichever comes
// first.
func splitProperty(line string) (key, value string, ok bool) {
	eq := strings.IndexByte(line, '=')
	colon := strings.IndexByte(line, ':')
	sep := eq
	if sep == -1 || (colon != -1 && colon < sep) {
		sep = colon
	}
	if sep == -1 {
		return "", "", false
	}
	return strings.TrimSpace(line[:sep]), strings.TrimSpace(line[sep+1:]), true
}

// Bool reads a property as a Gradle-convention boolean: case-insensitive
// "true" is true, everything else (including absent) is false. Note this is
// deliberately a different rule from the Xcode YES/NO environment booleans.
func Bool(store Store, key string) bool {
	raw, ok := store.Lookup(key)
	return ok && strings.EqualFold(raw, "true")
}

// UseEnvironmentVariables reports whether the build has opted in to reading
// the Xcode-exported environment. Absent means opted out.
func UseEnvironmentVariables(store Store) bool {
	return Bool(store, xcodeenv.PropertyUseEnvironment)
}
