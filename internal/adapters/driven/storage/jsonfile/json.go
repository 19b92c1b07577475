package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/custodia-labs/streamctl/internal/core/domain"
	"github.com/custodia-labs/streamctl/internal/logger"
)

// ErrorSuffix is appended to the path of a corrupt file's backup copy.
const ErrorSuffix = "_error"

// Load reads a JSON object from path. Numbers are returned as json.Number
// so integers beyond float64 precision survive a Save/Load cycle.
// Returns domain.ErrNotFound if the file does not exist and domain.ErrCorrupt
// if it cannot be decoded. With backup set, a corrupt file is first copied to
// path+"_error".
func Load(path string, backup bool) (map[string]any, error) {
	var content map[string]any
	if err := LoadInto(path, &content, backup); err != nil {
		return nil, err
	}
	if content == nil {
		content = make(map[string]any)
	}
	return content, nil
}

// LoadInto decodes the JSON file at path into v, with the same outcomes as Load.
func LoadInto(path string, v any, backup bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return err
	}

	decodeErr := decode(data, v)
	if decodeErr == nil {
		return nil
	}

	if backup {
		if err := os.WriteFile(path+ErrorSuffix, data, 0600); err != nil {
			logger.Error("could not back up corrupt json file", "path", path, "error", err)
		}
	}
	logger.Error("there was an error in the json file, you can view it at this path",
		"path", path+ErrorSuffix, "error", decodeErr)
	return fmt.Errorf("%w: %s: %v", domain.ErrCorrupt, path, decodeErr)
}

func decode(data []byte, v any) error {
	if !utf8.Valid(data) {
		return errors.New("invalid utf-8")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("trailing data after json value")
	}
	return nil
}

// Save writes v as indented JSON to path atomically.
func Save(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	committed = true
	return nil
}
