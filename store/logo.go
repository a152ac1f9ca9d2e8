package store

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"companyintel/fetcher"
)

var logoExtensions = map[string]string{
	"image/png":                ".png",
	"image/jpeg":               ".jpg",
	"image/jpg":                ".jpg",
	"image/gif":                ".gif",
	"image/webp":               ".webp",
	"image/svg+xml":            ".svg",
	"image/x-icon":             ".ico",
	"image/vnd.microsoft.icon": ".ico",
}

// LogoSaver downloads company logos into <dir>/logos.
type LogoSaver struct {
	fetcher fetcher.Fetcher
	dir     string
	logger  *zap.Logger
}

// NewLogoSaver creates a saver that writes below dataDir/logos.
func NewLogoSaver(f fetcher.Fetcher, dataDir string, logger *zap.Logger) *LogoSaver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogoSaver{
		fetcher: f,
		dir:     filepath.Join(dataDir, "logos"),
		logger:  logger,
	}
}

// Dir is the directory logos are written to.
func (s *LogoSaver) Dir() string {
	return s.dir
}

// Save downloads logoURL and writes it as <key>_logo<ext>. It returns the
// written path, or "" when the logo could not be saved.
func (s *LogoSaver) Save(ctx context.Context, key, logoURL string) string {
	p, err := s.save(ctx, key, logoURL)
	if err != nil {
		s.logger.Warn("store: could not save logo",
			zap.String("key", key),
			zap.String("logo_url", logoURL),
			zap.Error(err),
		)
		return ""
	}
	s.logger.Debug("store: saved logo", zap.String("path", p))
	return p
}

func (s *LogoSaver) save(ctx context.Context, key, logoURL string) (string, error) {
	if err := validKey(key); err != nil {
		return "", err
	}
	page, err := s.fetcher.Fetch(ctx, logoURL)
	if err != nil {
		return "", eris.Wrap(err, "store: download logo")
	}
	if len(page.Body) == 0 {
		return "", eris.New("store: empty logo")
	}
	ext, err := logoExtension(page.ContentType, logoURL)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", eris.Wrapf(err, "store: create %s", s.dir)
	}
	dst := filepath.Join(s.dir, LogoFileName(key, ext))
	if err := os.WriteFile(dst, page.Body, 0o644); err != nil {
		return "", eris.Wrapf(err, "store: write %s", dst)
	}
	return dst, nil
}

// LogoFileName is the file name a logo for key is stored under.
func LogoFileName(key, ext string) string {
	return url.PathEscape(key) + "_logo" + ext
}

// logoExtension picks the file extension from the content type, falling back
// to the URL path and then ".png". Text responses are not images.
func logoExtension(contentType, logoURL string) (string, error) {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if ext, ok := logoExtensions[mediaType]; ok {
		return ext, nil
	}
	if strings.HasPrefix(mediaType, "text/") {
		return "", eris.Errorf("store: logo has content type %s", mediaType)
	}
	if u, err := url.Parse(logoURL); err == nil {
		ext := strings.ToLower(path.Ext(u.Path))
		for _, known := range logoExtensions {
			if ext == known {
				return ext, nil
			}
		}
	}
	return ".png", nil
}
