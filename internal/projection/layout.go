package projection

import (
	"path"
	"strings"

	"github.com/Sachithra-228/evidencedeck/internal/models"
)

// Layout decides where an artifact's media lives. Keys are relative to the
// media store root; sources are the URLs the gallery renders.
type Layout struct {
	BaseURL    string
	ScreensDir string
	VideosDir  string
	ImageExt   string
	VideoExt   string
}

// DefaultLayout matches the directories written by the capture script.
func DefaultLayout() Layout {
	return Layout{
		BaseURL:    DefaultBaseURL,
		ScreensDir: "screens",
		VideosDir:  "videos",
		ImageExt:   ".png",
		VideoExt:   ".webm",
	}
}

// Key returns the store key of the media of the given kind for id.
func (l Layout) Key(kind models.MediaKind, id string) string {
	if kind == models.MediaVideo {
		return l.VideoKey(id)
	}
	return l.ImageKey(id)
}

// ImageKey returns the store key of the screenshot for id.
func (l Layout) ImageKey(id string) string {
	return path.Join(l.ScreensDir, id+l.ImageExt)
}

// VideoKey returns the store key of the video for id.
func (l Layout) VideoKey(id string) string {
	return path.Join(l.VideosDir, id+l.VideoExt)
}

// ImageSrc returns the URL of the screenshot for id.
func (l Layout) ImageSrc(id string) string {
	return l.src(l.ImageKey(id))
}

// VideoSrc returns the URL of the video for id.
func (l Layout) VideoSrc(id string) string {
	return l.src(l.VideoKey(id))
}

func (l Layout) src(key string) string {
	base := strings.TrimRight(l.BaseURL, "/")
	return base + "/" + key
}

func (l Layout) withDefaults() Layout {
	d := DefaultLayout()
	if l.BaseURL == "" {
		l.BaseURL = d.BaseURL
	}
	if l.ScreensDir == "" {
		l.ScreensDir = d.ScreensDir
	}
	if l.VideosDir == "" {
		l.VideosDir = d.VideosDir
	}
	if l.ImageExt == "" {
		l.ImageExt = d.ImageExt
	}
	if l.VideoExt == "" {
		l.VideoExt = d.VideoExt
	}
	return l
}
