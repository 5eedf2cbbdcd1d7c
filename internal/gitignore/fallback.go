package gitignore

// Built-in templates used when the remote lookup misses and the user opted
// into fallback mode. Deliberately minimal; the remote collection is the
// source of truth.
var builtin = map[string]string{
	"Python": `# Python
__pycache__/
*.py[cod]
*$py.class
*.so
.Python
env/
build/
develop-eggs/
dist/
downloads/
eggs/
.eggs/
lib/
lib64/
parts/
sdist/
var/
*.egg-info/
.installed.cfg
*.egg
.pytest_cache/
.coverage
htmlcov/
.tox/
.venv/
venv/
ENV/
`,
	"Node": `# Node.js
node_modules/
npm-debug.log
yarn-debug.log
yarn-error.log
package-lock.json
.npm
.node_repl_history
.env
.env.test
.cache
.next
.nuxt
dist/
`,
	"Java": `# Java
*.class
*.log
*.jar
*.war
*.ear
*.zip
*.tar.gz
*.rar
hs_err_pid*
.mtj.tmp/
target/
.idea/
*.iml
.classpath
.project
.settings/
bin/
`,
	"Go": `# Go
*.exe
*.exe~
*.dll
*.so
*.dylib
*.test
*.out
vendor/
go.work
go.work.sum
.env
`,
}

const genericTemplate = `# IDE files
.idea/
.vscode/
*.swp
*.swo
*~

# OS files
.DS_Store
Thumbs.db
`

// Fallback returns the built-in template for name, or a generic IDE/OS
// template when no built-in exists.
func Fallback(name string) string {
	if body, ok := builtin[name]; ok {
		return body
	}
	return genericTemplate
}
