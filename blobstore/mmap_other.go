//go:build !(linux || darwin || freebsd || openbsd || netbsd)

package blobstore

import "os"

func mapFile(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, nil, nil
}
