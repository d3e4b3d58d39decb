package email

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"strings"
	"sync"
	texttemplate "text/template"
)

//go:embed templates/*.html templates/*.txt
var builtin embed.FS

// Template names shipped with the binary.
const (
	TemplateNewMessage  = "new_message"
	TemplateClaimStatus = "claim_status"
)

// TemplateManager держит пары html/txt шаблонов по имени
type TemplateManager struct {
	html  map[string]*htmltemplate.Template
	text  map[string]*texttemplate.Template
	mutex sync.RWMutex
}

// NewTemplateManager загружает встроенные шаблоны
func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{
		html: make(map[string]*htmltemplate.Template),
		text: make(map[string]*texttemplate.Template),
	}
	if err := tm.load(builtin, "templates"); err != nil {
		return nil, err
	}
	return tm, nil
}

func (tm *TemplateManager) load(fsys fs.FS, dir string) error {
	return fs.WalkDir(fsys, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}
		base := path[strings.LastIndex(path, "/")+1:]
		switch {
		case strings.HasSuffix(base, ".html"):
			return tm.AddHTML(strings.TrimSuffix(base, ".html"), string(content))
		case strings.HasSuffix(base, ".txt"):
			return tm.AddText(strings.TrimSuffix(base, ".txt"), string(content))
		}
		return nil
	})
}

func (tm *TemplateManager) AddHTML(name, src string) error {
	tpl, err := htmltemplate.New(name).Parse(src)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", name, err)
	}
	tm.mutex.Lock()
	tm.html[name] = tpl
	tm.mutex.Unlock()
	return nil
}

func (tm *TemplateManager) AddText(name, src string) error {
	tpl, err := texttemplate.New(name).Parse(src)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", name, err)
	}
	tm.mutex.Lock()
	tm.text[name] = tpl
	tm.mutex.Unlock()
	return nil
}

// Render возвращает html и текстовую версии. Текстовая версия может
// отсутствовать.
func (tm *TemplateManager) Render(name string, data TemplateData) (string, string, error) {
	tm.mutex.RLock()
	h, okHTML := tm.html[name]
	t, okText := tm.text[name]
	tm.mutex.RUnlock()

	if !okHTML {
		return "", "", fmt.Errorf("template not found: %s", name)
	}

	var html strings.Builder
	if err := h.Execute(&html, data); err != nil {
		return "", "", fmt.Errorf("execute template %s: %w", name, err)
	}

	var text strings.Builder
	if okText {
		if err := t.Execute(&text, data); err != nil {
			return "", "", fmt.Errorf("execute template %s: %w", name, err)
		}
	}
	return html.String(), text.String(), nil
}
