package review

import (
	"html/template"
	"os"
	"path/filepath"
	"strings"
)

// promptTemplate renders the confirmation page shown to the reviewer
// before a group's links are opened.
var promptTemplate = template.Must(template.New("prompt").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.SourceFile}} - QC</title>
<style>
  body { font-family: sans-serif; margin: 40px; background-color: #f4f4f9; }
  .container { background-color: #ffffff; padding: 30px; border-radius: 8px; box-shadow: 0 4px 8px rgba(0,0,0,0.1); }
  h1 { color: #2c3e50; border-bottom: 3px solid #3498db; padding-bottom: 10px; }
  p { font-size: 1.1em; color: #34495e; }
  .highlight { color: #e74c3c; font-weight: bold; font-size: 1.2em; }
  .count { color: #27ae60; font-weight: bold; }
</style>
</head>
<body>
<div class="container">
  <h1>Hyperlink quality check</h1>
  <p>Source file under review: <span class="highlight">{{.SourceFile}}</span></p>
  <p>The next <span class="count">{{.Count}}</span> tabs are this file's deduplicated hyperlinks.</p>
  <p>Check each opened link for validity and content.</p>
</div>
</body>
</html>
`))

type promptData struct {
	SourceFile string
	Count      int
}

// illegalNameChars are stripped from source file names before they are
// embedded in a confirmation artifact's file name.
const illegalNameChars = `/\?%*:|"<>` + "【】"

// PromptFileName returns the confirmation artifact name for a source
// file. Characters that are unsafe in file names become underscores, as
// do dots, so the name never gains a surprise extension.
func PromptFileName(sourceFile string) string {
	var b strings.Builder
	for _, r := range sourceFile {
		if r == '.' || strings.ContainsRune(illegalNameChars, r) {
			b.WriteRune('_')
			continue
		}
		b.WriteRune(r)
	}
	return "QC_Prompt_" + b.String() + ".html"
}

// writePrompt renders one group's confirmation page into dir and returns
// its path.
func writePrompt(dir string, g Group) (string, error) {
	path := filepath.Join(dir, PromptFileName(g.SourceFile))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := promptTemplate.Execute(f, promptData{SourceFile: g.SourceFile, Count: len(g.URLs)}); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}
