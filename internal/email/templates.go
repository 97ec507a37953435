package email

import (
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	TemplateApplicationStatus   = "application_status"
	TemplateApplicationReceived = "application_received"
	TemplateCompanyStatus       = "company_status"
	TemplatePasswordReset       = "password_reset"
)

// builtinTemplates используются, пока LoadTemplates не подменит их файлами из templates_dir
var builtinTemplates = map[string]string{
	TemplateApplicationStatus: `<p>Hello {{.Name}},</p>
<p>{{.Message}}</p>
<p>Position: <b>{{.JobTitle}}</b> at {{.CompanyName}}</p>
{{if .Notes}}<p>Notes: {{.Notes}}</p>{{end}}`,

	TemplateApplicationReceived: `<p>Hello {{.Name}},</p>
<p>We have received your application for <b>{{.JobTitle}}</b> at {{.CompanyName}}.</p>`,

	TemplateCompanyStatus: `<p>Hello {{.Name}},</p>
<p>Your company <b>{{.CompanyName}}</b> is now {{.Status}}.</p>
{{if .Reason}}<p>Reason: {{.Reason}}</p>{{end}}`,

	TemplatePasswordReset: `<p>Hello {{.Name}},</p>
<p>Use the link below to reset your password. It expires in 24 hours.</p>
<p><a href="{{.ResetURL}}">{{.ResetURL}}</a></p>`,
}

// TemplateManager управляет html-шаблонами писем
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер со встроенными шаблонами
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	for name, body := range builtinTemplates {
		tm.templates[name] = template.Must(template.New(name).Parse(body))
	}
	return tm
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate добавляет или заменяет шаблон
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}

// LoadTemplates загружает *.html из директории; имя шаблона = имя файла без расширения
func (tm *TemplateManager) LoadTemplates(dirPath string) error {
	return filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}

		templateName := strings.TrimSuffix(filepath.Base(path), ".html")
		if err := tm.AddTemplate(templateName, string(content)); err != nil {
			return fmt.Errorf("failed to add template %s: %w", templateName, err)
		}

		return nil
	})
}
