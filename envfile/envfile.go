// Copyright (c) 2025 BVK Chaitanya

// Package envfile loads trading configuration variables from an env file
// into the process environment.
package envfile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"regexp"
	"strings"
)

var nameRe = regexp.MustCompile("^[a-zA-Z][0-9a-zA-Z_]*$")

// UpdateEnv reads KEY=VALUE lines from the first env file with the given
// name found in the current directory, its parent directories or the
// user's home directory and sets each variable that is not already set.
// Values are taken verbatim, with no shell expansion or comment handling.
func UpdateEnv(filename string) error {
	if strings.ContainsRune(filename, os.PathSeparator) {
		return fmt.Errorf("file name contains path separator: %w", os.ErrInvalid)
	}
	fpaths, err := searchPaths(filename)
	if err != nil {
		return err
	}
	for _, fpath := range fpaths {
		fp, err := os.Open(fpath)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return err
			}
			continue
		}
		defer fp.Close()
		return updateFromFile(fp)
	}
	return nil
}

// searchPaths returns candidate env file locations, nearest first.
func searchPaths(filename string) ([]string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	fpaths := []string{filepath.Join(cwd, filename)}
	last, dir := cwd, filepath.Dir(cwd)
	for dir != last {
		fpaths = append(fpaths, filepath.Join(dir, filename))
		last, dir = dir, filepath.Dir(dir)
	}
	user, err := user.Current()
	if err != nil {
		return nil, err
	}
	if len(user.HomeDir) == 0 {
		return nil, fmt.Errorf("could not determine current user's home directory")
	}
	return append(fpaths, filepath.Join(user.HomeDir, filename)), nil
}

func updateFromFile(fp *os.File) error {
	scanner := bufio.NewScanner(fp)
	for i := 1; scanner.Scan(); i++ {
		line := string(bytes.TrimSpace(scanner.Bytes()))
		if len(line) == 0 {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid/unrecognized variable assignment on line %d: %w", i, os.ErrInvalid)
		}
		if !nameRe.MatchString(key) {
			return fmt.Errorf("invalid environment variable name %q on line %d: %w", key, i, os.ErrInvalid)
		}
		if len(os.Getenv(key)) != 0 {
			continue
		}
		os.Setenv(key, value)
	}
	return scanner.Err()
}
