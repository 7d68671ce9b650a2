package scan

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/JoshuaShunk/tik-tok-wrapped/internal/parse"
)

// maxMemberSize caps the decompressed size of one archive member.
const maxMemberSize = 256 << 20

// Member names the export uses for each text section.
const (
	ProfileInfoFile    = "profile info.txt"
	DirectMessagesFile = "direct messages.txt"
	OrderHistoryFile   = "order history.txt"
	LoginHistoryFile   = "login history.txt"
)

// Archive maps lowercased member paths to their text content.
type Archive map[string]string

// ScanArchive decompresses every regular member of a ZIP archive.
func ScanArchive(data []byte) (Archive, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	files := make(Archive, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		text, err := readMember(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		files[strings.ToLower(f.Name)] = text
	}
	return files, nil
}

func readMember(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	b, err := io.ReadAll(io.LimitReader(rc, maxMemberSize+1))
	if err != nil {
		return "", err
	}
	if len(b) > maxMemberSize {
		return "", fmt.Errorf("member larger than %d bytes", maxMemberSize)
	}
	return string(b), nil
}

// Find returns the content of the lexically first member whose path contains
// name, or "" when none does.
func (a Archive) Find(name string) string {
	name = strings.ToLower(name)
	var matches []string
	for path := range a {
		if strings.Contains(path, name) {
			matches = append(matches, path)
		}
	}
	if len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	return a[matches[0]]
}

// Tree lays the text members out the way a JSON export nests its sections,
// so the same normalizer handles both inputs.
func (a Archive) Tree() parse.RawExport {
	return parse.RawExport{
		"Profile": map[string]any{
			"Profile Info": a.Find(ProfileInfoFile),
		},
		"Direct Messages": map[string]any{
			"Chat History": map[string]any{
				"ChatHistory": a.Find(DirectMessagesFile),
			},
		},
		"TikTok Shopping": map[string]any{
			"Order History": a.Find(OrderHistoryFile),
		},
		"Activity": map[string]any{
			"Login History": map[string]any{
				"LoginHistoryList": a.Find(LoginHistoryFile),
			},
		},
	}
}
