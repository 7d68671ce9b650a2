package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoshuaShunk/tik-tok-wrapped/internal/parse"
	"github.com/JoshuaShunk/tik-tok-wrapped/internal/store"
)

const sampleJSON = `{
  "Profile": {"Profile Information": {"ProfileMap": {"userName": "josh", "birthDate": "2000-01-01"}}},
  "Direct Messages": {"Chat History": {"ChatHistory": {
    "Chat History with Alice:": [
      {"Date": "2024-01-01 10:00:00", "From": "josh", "Content": "hi"},
      {"Date": "2024-01-01 10:01:00", "From": "alice", "Content": "hey"}
    ]
  }}},
  "Activity": {"Login History": {"LoginHistoryList": [{"Date": "2024-01-01 09:00:00"}]}},
  "Tiktok Shopping": {"Order History": {"OrderHistories": {
    "1": {"order_date": "2024-01-01", "total_price": "12.50 USD",
          "products": [{"product_name": "Widget", "sku_name": "Blue", "quantity": 2}]}
  }}}
}`

func openStore(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.OpenDB(filepath.Join(t.TempDir(), "ttw.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestReadExport_JSON(t *testing.T) {
	raw, err := ReadExport([]byte(sampleJSON))
	require.NoError(t, err)
	assert.Contains(t, raw, "Profile")
}

func TestReadExport_NonObjectJSON(t *testing.T) {
	raw, err := ReadExport([]byte(`[1, 2, 3]`))
	require.NoError(t, err)
	m := parse.Normalize(raw, "")
	assert.Equal(t, parse.Unknown, m.Profile.Name)
}

func TestReadExport_Garbage(t *testing.T) {
	_, err := ReadExport([]byte("this is not an export"))
	require.ErrorIs(t, err, ErrInputFormat)

	_, err = ReadExport([]byte("PK\x03\x04truncated"))
	require.ErrorIs(t, err, ErrInputFormat)
}

func TestReadExport_Zip(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("TikTok/Profile Info.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("Username: josh\nBirthdate: 2000-01-01\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	raw, err := ReadExport(buf.Bytes())
	require.NoError(t, err)
	m := parse.Normalize(raw, "josh")
	assert.Equal(t, parse.Profile{Name: "josh", BirthDate: "2000-01-01"}, m.Profile)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInputFormat)
}

func TestImportRestoreRoundTrip(t *testing.T) {
	db := openStore(t)
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0o644))

	raw, err := ReadFile(path)
	require.NoError(t, err)

	imported, err := Import(db, raw, "josh", zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, Stats{Contacts: 1, Messages: 2, Sent: 1, Logins: 1, Orders: 1}, StatsOf(imported))

	loaded, err := Restore(db, "josh", zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, imported, loaded.Model)
	assert.False(t, loaded.StoredAt.IsZero())
	assert.Positive(t, loaded.Size)
}

func TestRestore_Empty(t *testing.T) {
	db := openStore(t)

	loaded, err := Restore(db, "", zerolog.Nop())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRestore_UndecodableBlob(t *testing.T) {
	db := openStore(t)
	require.NoError(t, db.Save([]byte("{not json")))

	_, err := Restore(db, "", zerolog.Nop())
	require.ErrorIs(t, err, store.ErrStorage)
}

func TestImport_ReplacesPrevious(t *testing.T) {
	db := openStore(t)

	_, err := Import(db, parse.RawExport{"name": "first"}, "", zerolog.Nop())
	require.NoError(t, err)
	_, err = Import(db, parse.RawExport{"name": "second"}, "", zerolog.Nop())
	require.NoError(t, err)

	loaded, err := Restore(db, "", zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "second", loaded.Model.Profile.Name)
}

func TestImport_FailureKeepsPrevious(t *testing.T) {
	db := openStore(t)

	_, err := Import(db, parse.RawExport{"name": "first"}, "", zerolog.Nop())
	require.NoError(t, err)
	_, err = Import(db, parse.RawExport{"name": "second", "bad": make(chan int)}, "", zerolog.Nop())
	require.Error(t, err)

	loaded, err := Restore(db, "", zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "first", loaded.Model.Profile.Name)
}

func TestReadExport_EmptyZip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, zip.NewWriter(&buf).Close())
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PK\x05\x06")))

	raw, err := ReadExport(buf.Bytes())
	require.NoError(t, err)
	m := parse.Normalize(raw, "")
	assert.Equal(t, parse.Profile{Name: parse.Unknown, BirthDate: parse.Unknown}, m.Profile)
	assert.Equal(t, 0, m.Conversations.TotalMessages())
	assert.Empty(t, m.Logins)
	assert.Equal(t, 0, m.Shopping.TotalOrders)
}
