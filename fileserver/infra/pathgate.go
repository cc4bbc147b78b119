package infra

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"concurrent-fileserver/fileserver/domain"
)

// Resolve junta requestPath sob root, canoniza o resultado e exige que ele seja
// o próprio root ou um descendente dele. Qualquer fuga (segmentos "..", links
// simbólicos apontando para fora) devolve domain.ErrTraversal.
//
// Alvos inexistentes não são erro aqui: a classificação (404) é do chamador.
func Resolve(root, requestPath string) (string, error) {
	base, err := canonical(root)
	if err != nil {
		return "", fmt.Errorf("resolve root %q: %w", root, err)
	}

	rel := filepath.FromSlash(strings.TrimLeft(requestPath, "/"))
	full := filepath.Join(base, rel)
	if !within(base, full) {
		return "", fmt.Errorf("%q: %w", requestPath, domain.ErrTraversal)
	}

	real, err := filepath.EvalSymlinks(full)
	switch {
	case err == nil:
		if !within(base, real) {
			return "", fmt.Errorf("%q: %w", requestPath, domain.ErrTraversal)
		}
		return real, nil
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		return full, nil
	default:
		return "", fmt.Errorf("resolve %q: %w", requestPath, err)
	}
}

func canonical(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return real, nil
}

func within(base, p string) bool {
	rel, err := filepath.Rel(base, p)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator)))
}
