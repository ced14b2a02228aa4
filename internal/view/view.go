// Package view 内嵌页面模板
package view

import (
	"caseforge_backend/internal/model"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"
)

//go:embed templates/*.html static
var assets embed.FS

// Funcs 模板里可用的辅助函数
func Funcs() template.FuncMap {
	return template.FuncMap{
		"difficulty": model.DifficultyLabel,
		"join":       strings.Join,
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.UTC().Format("Jan 2, 2006")
		},
		"score": func(v *float64) string {
			if v == nil {
				return "Pending"
			}
			return fmt.Sprintf("%.0f", *v)
		},
		"pct": func(v float64) string {
			return fmt.Sprintf("%.0f%%", v)
		},
		"minutes": func(seconds int) int {
			return seconds / 60
		},
	}
}

// Templates 解析全部页面模板，模板名即文件名
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(assets, "templates/*.html")
}

// MustTemplates 启动阶段使用，模板有误时直接 panic
func MustTemplates() *template.Template {
	return template.Must(Templates())
}

// Static 页面使用的样式等静态资源
func Static() http.FileSystem {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
