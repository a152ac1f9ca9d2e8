package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"companyintel/model"
	"companyintel/tracker"
)

const companyPage = `<html><head>
<title>Acme Corp | Official Site</title>
<meta name="description" content="Rockets and anvils.">
<link rel="icon" href="/fav.png">
</head><body></body></html>`

func companySite(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/fav.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
		default:
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(companyPage))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func runCLI(t *testing.T, args ...string) []byte {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("COMPANYINTEL_TICKER_PROVIDER", "none")
	t.Setenv("COMPANYINTEL_LOG_LEVEL", "error")
	t.Cleanup(func() { extractSave = false })

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return buf.Bytes()
}

func TestExtractCommand(t *testing.T) {
	srv := companySite(t)

	var rec model.CompanyRecord
	require.NoError(t, json.Unmarshal(runCLI(t, "extract", srv.URL), &rec))

	assert.Equal(t, srv.URL, rec.SourceURL)
	assert.Equal(t, "Acme Corp", rec.NameOr(""))
	require.NotNil(t, rec.LogoURL)
	assert.Equal(t, srv.URL+"/fav.png", *rec.LogoURL)
	assert.Nil(t, rec.StockInfo)
	assert.NoFileExists(t, filepath.Join("data", "acme_corp.json"))
}

func TestExtractCommand_Save(t *testing.T) {
	srv := companySite(t)

	var out tracker.Outcome
	require.NoError(t, json.Unmarshal(runCLI(t, "extract", "--save", srv.URL), &out))

	assert.Equal(t, "acme_corp", out.Key)
	assert.FileExists(t, filepath.Join("data", "acme_corp.json"))
	assert.Equal(t, filepath.Join("data", "logos", "acme_corp_logo.png"), out.LogoPath)
	assert.FileExists(t, out.LogoPath)
}

func TestExtractCommand_RequiresURL(t *testing.T) {
	rootCmd.SetArgs([]string{"extract"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	assert.Error(t, rootCmd.Execute())
}
