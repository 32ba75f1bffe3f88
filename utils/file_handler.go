package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// AllowedExtensions is the upload whitelist. Everything else is rejected
// before any database row is written.
var AllowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
	".zip":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

const defaultMaxUploadSize = 50 * 1024 * 1024 // 50 MiB

// MaxUploadSize returns the configured upload limit in bytes.
func MaxUploadSize() int64 {
	if raw := os.Getenv("MAX_UPLOAD_SIZE"); raw != "" {
		if size, err := strconv.ParseInt(raw, 10, 64); err == nil && size > 0 {
			return size
		}
	}
	return defaultMaxUploadSize
}

// UploadPath returns the root directory for stored files.
func UploadPath() string {
	if path := os.Getenv("UPLOAD_PATH"); path != "" {
		return path
	}
	return "./uploads"
}

// FileExtension returns the lowercased extension of filename.
func FileExtension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// ValidateFileType reports whether filename carries an allowed extension.
func ValidateFileType(filename string) bool {
	return AllowedExtensions[FileExtension(filename)]
}

func allowedExtensionList() string {
	exts := make([]string, 0, len(AllowedExtensions))
	for ext := range AllowedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}

// GenerateUniqueFilename produces a collision-free stored name keeping the
// original extension.
func GenerateUniqueFilename(originalFilename string) string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return hex + FileExtension(originalFilename)
}

// SaveUploadFile validates and persists an uploaded file under
// UploadPath()/subdir. Returns (stored path, generated filename, size).
// Validation failures leave no file behind.
func SaveUploadFile(file *multipart.FileHeader, subdir string) (string, string, int64, error) {
	if !ValidateFileType(file.Filename) {
		return "", "", 0, fmt.Errorf("file type not allowed, allowed types: %s", allowedExtensionList())
	}

	src, err := file.Open()
	if err != nil {
		return "", "", 0, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// The whole file is buffered before the size check; simplicity over
	// streaming, bounded by the transport's request limits.
	content, err := io.ReadAll(src)
	if err != nil {
		return "", "", 0, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	maxSize := MaxUploadSize()
	if int64(len(content)) > maxSize {
		return "", "", 0, fmt.Errorf("file size exceeds limit (%d MB)", maxSize/1024/1024)
	}

	if subdir == "" {
		subdir = "general"
	}
	uploadDir := filepath.Join(UploadPath(), subdir)
	if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
		return "", "", 0, fmt.Errorf("failed to create upload directory: %w", err)
	}

	uniqueFilename := GenerateUniqueFilename(file.Filename)
	fullPath := filepath.Join(uploadDir, uniqueFilename)

	if err := os.WriteFile(fullPath, content, 0o644); err != nil {
		return "", "", 0, fmt.Errorf("failed to store file: %w", err)
	}

	return fullPath, uniqueFilename, int64(len(content)), nil
}

// DeleteFile removes a stored file, reporting whether anything was removed.
func DeleteFile(path string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}
	return os.Remove(path) == nil
}
