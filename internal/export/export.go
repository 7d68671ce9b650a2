package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/JoshuaShunk/tik-tok-wrapped/internal/parse"
	"github.com/JoshuaShunk/tik-tok-wrapped/internal/scan"
	"github.com/JoshuaShunk/tik-tok-wrapped/internal/store"
)

// ErrInputFormat means the supplied file is neither JSON nor a readable
// archive. The remedy is a different file.
var ErrInputFormat = errors.New("unrecognized export format")

// local file header, or end of central directory for an empty archive
var zipMagics = [][]byte{[]byte("PK\x03\x04"), []byte("PK\x05\x06")}

// ReadExport decodes export bytes into a raw tree. ZIP archives are
// recognized by their magic number; anything else must be JSON.
func ReadExport(data []byte) (parse.RawExport, error) {
	if isZip(data) {
		archive, err := scan.ScanArchive(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInputFormat, err)
		}
		return archive.Tree(), nil
	}

	var tree any
	if err := json.Unmarshal(bytes.TrimPrefix(data, []byte("\ufeff")), &tree); err != nil {
		return nil, fmt.Errorf("%w: not JSON and not a ZIP archive: %v", ErrInputFormat, err)
	}
	// a non-object document has no known sections
	obj, _ := tree.(map[string]any)
	if obj == nil {
		obj = map[string]any{}
	}
	return parse.RawExport(obj), nil
}

func isZip(data []byte) bool {
	for _, magic := range zipMagics {
		if bytes.HasPrefix(data, magic) {
			return true
		}
	}
	return false
}

func ReadFile(path string) (parse.RawExport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	return ReadExport(data)
}

type Stats struct {
	Contacts    int
	Messages    int
	Sent        int
	Logins      int
	Orders      int
	Diagnostics int
}

func (s Stats) String() string {
	return fmt.Sprintf("contacts=%d messages=%d sent=%d logins=%d orders=%d diagnostics=%d",
		s.Contacts, s.Messages, s.Sent, s.Logins, s.Orders, s.Diagnostics)
}

func StatsOf(m *parse.Model) Stats {
	return Stats{
		Contacts:    len(m.Conversations.MessageCounts),
		Messages:    m.Conversations.TotalMessages(),
		Sent:        len(m.Conversations.SentMessages),
		Logins:      len(m.Logins),
		Orders:      m.Shopping.TotalOrders,
		Diagnostics: len(m.Diagnostics),
	}
}

// Import stores raw as the resident export, replacing any previous one, and
// returns its canonical model.
func Import(db *store.DB, raw parse.RawExport, owner string, log zerolog.Logger) (*parse.Model, error) {
	blob, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	if err := db.Save(blob); err != nil {
		return nil, err
	}

	m := parse.Normalize(raw, owner)
	logDiagnostics(log, m)
	log.Info().Str("stats", StatsOf(m).String()).Msg("export imported")
	return m, nil
}

// Loaded is the resident export re-parsed from storage.
type Loaded struct {
	Model          *parse.Model
	Raw            parse.RawExport
	StoredAt       time.Time
	Size           int
	CompressedSize int
}

// Restore loads the stored raw export and runs it through the normalizer
// again. It returns nil when nothing is stored.
func Restore(db *store.DB, owner string, log zerolog.Logger) (*Loaded, error) {
	snap, err := db.Load()
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, nil
	}

	var raw parse.RawExport
	if err := json.Unmarshal(snap.Blob, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode stored export: %v", store.ErrStorage, err)
	}
	if raw == nil {
		raw = parse.RawExport{}
	}

	m := parse.Normalize(raw, owner)
	logDiagnostics(log, m)
	log.Debug().Time("stored_at", snap.StoredAt).Int("bytes", len(snap.Blob)).Msg("export restored")

	return &Loaded{
		Model:          m,
		Raw:            raw,
		StoredAt:       snap.StoredAt,
		Size:           len(snap.Blob),
		CompressedSize: snap.CompressedSize,
	}, nil
}

func logDiagnostics(log zerolog.Logger, m *parse.Model) {
	for _, d := range m.Diagnostics {
		ev := log.Debug().Str("section", d.Section)
		if d.Line > 0 {
			ev = ev.Int("line", d.Line)
		}
		ev.Msg(d.Reason)
	}
}
