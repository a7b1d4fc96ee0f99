package extract

import (
	"context"
	"errors"
	"os"
	"strings"
	"unicode/utf8"
)

var errInvalidUTF8 = errors.New("not valid UTF-8")

func extractTXT(_ context.Context, path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	if !utf8.Valid(data) {
		return "", "", errInvalidUTF8
	}
	return strings.TrimPrefix(string(data), "\ufeff"), "", nil
}
