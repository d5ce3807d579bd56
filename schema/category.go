package schema

import (
	"path/filepath"
	"strings"
)

// Language categories covered by the built-in checks.
const (
	PythonCategory     Category = "python"
	JavaScriptCategory Category = "javascript"
	JavaCategory       Category = "java"
	CCategory          Category = "c"
	CSharpCategory     Category = "csharp"
	GoCategory         Category = "go"
	RubyCategory       Category = "ruby"
	PHPCategory        Category = "php"
	SwiftCategory      Category = "swift"
	KotlinCategory     Category = "kotlin"
	ScalaCategory      Category = "scala"
	RustCategory       Category = "rust"
	OtherCategory      Category = "other"
)

// categoryByExt maps lowercase file extensions to language categories.
var categoryByExt = map[string]Category{
	".py":    PythonCategory,
	".js":    JavaScriptCategory,
	".jsx":   JavaScriptCategory,
	".ts":    JavaScriptCategory,
	".tsx":   JavaScriptCategory,
	".java":  JavaCategory,
	".c":     CCategory,
	".h":     CCategory,
	".cpp":   CCategory,
	".cc":    CCategory,
	".hpp":   CCategory,
	".cs":    CSharpCategory,
	".go":    GoCategory,
	".rb":    RubyCategory,
	".php":   PHPCategory,
	".swift": SwiftCategory,
	".kt":    KotlinCategory,
	".scala": ScalaCategory,
	".rs":    RustCategory,
}

// CategoryForPath derives the language category from a file's extension.
// Unknown extensions map to OtherCategory.
func CategoryForPath(path string) Category {
	ext := strings.ToLower(filepath.Ext(path))
	if cat, ok := categoryByExt[ext]; ok {
		return cat
	}
	return OtherCategory
}

// CodeExtensions returns the extensions for all known language categories.
// The result is a fresh slice; callers may modify it.
func CodeExtensions() []string {
	exts := make([]string, 0, len(categoryByExt))
	for ext := range categoryByExt {
		exts = append(exts, ext)
	}
	return exts
}
