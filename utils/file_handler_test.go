package utils

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&body, writer.Boundary()).ReadForm(int64(len(content)) + 4096)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["file"][0]
}

func TestValidateFileType(t *testing.T) {
	assert.True(t, ValidateFileType("报告.pdf"))
	assert.True(t, ValidateFileType("REPORT.PDF"))
	assert.True(t, ValidateFileType("archive.zip"))
	assert.False(t, ValidateFileType("tool.exe"))
	assert.False(t, ValidateFileType("script.sh"))
	assert.False(t, ValidateFileType("noextension"))
}

func TestGenerateUniqueFilenameKeepsExtension(t *testing.T) {
	a := GenerateUniqueFilename("报告.PDF")
	b := GenerateUniqueFilename("报告.PDF")

	assert.True(t, strings.HasSuffix(a, ".pdf"))
	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, "-")
}

func TestSaveUploadFileRejectsDisallowedType(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UPLOAD_PATH", dir)

	header := multipartHeader(t, "malware.exe", []byte("xx"))
	_, _, _, err := SaveUploadFile(header, "applications/1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")

	// Nothing is written on rejection
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestSaveUploadFileRejectsOversize(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UPLOAD_PATH", dir)
	t.Setenv("MAX_UPLOAD_SIZE", "10")

	header := multipartHeader(t, "报告.pdf", bytes.Repeat([]byte("a"), 11))
	_, _, _, err := SaveUploadFile(header, "applications/1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds limit")

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestSaveUploadFileStoresContent(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UPLOAD_PATH", dir)

	content := []byte("%PDF-1.4 test")
	header := multipartHeader(t, "申报书.pdf", content)

	storedPath, storedName, size, err := SaveUploadFile(header, "applications/7")
	require.NoError(t, err)
	assert.EqualValues(t, len(content), size)
	assert.True(t, strings.HasSuffix(storedName, ".pdf"))
	assert.Equal(t, filepath.Join(dir, "applications/7", storedName), storedPath)

	stored, err := os.ReadFile(storedPath)
	require.NoError(t, err)
	assert.Equal(t, content, stored)

	assert.True(t, DeleteFile(storedPath))
	assert.False(t, DeleteFile(storedPath))
}
