package utils

import (
	"errors"
	"io"
	"os"
)

// IsFile tests wether given path exists and is a file
func IsFile(filePath string) bool {
	file, err := os.Stat(filePath)
	if err != nil {
		return false
	}

	return !file.IsDir()
}

// IsDirectory tests wether given path exists and is a directory
func IsDirectory(dirPath string) bool {
	dir, err := os.Stat(dirPath)
	if err != nil {
		return false
	}

	return dir.IsDir()
}

// IsReadableDirectory tests wether the process can list given directory
func IsReadableDirectory(dirPath string) bool {
	dir, err := os.Open(dirPath)
	if err != nil {
		return false
	}
	defer dir.Close()

	info, err := dir.Stat()
	if err != nil || !info.IsDir() {
		return false
	}

	_, err = dir.Readdirnames(1)
	return err == nil || errors.Is(err, io.EOF)
}
