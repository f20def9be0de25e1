package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/engramdev/engram/schema"
)

func TestScanManifests(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"package.json": `{
			"description": "A web app",
			"dependencies": {"react": "^18.0.0", "next": "^14.0.0"},
			"devDependencies": {"jest": "^29.0.0"}
		}`,
		"go.mod": "module example.com/demo\n\ngo 1.25\n\nrequire (\n\tgithub.com/gin-gonic/gin v1.10.0\n\tgithub.com/stretchr/testify v1.11.1\n)\n",
	})

	results, diags := ScanManifests(root)
	require.Len(t, results, 2)
	assert.Empty(t, diags)

	// Table order: package.json before go.mod.
	node := results[0]
	assert.Equal(t, schema.NodeManifest, node.Kind)
	assert.Equal(t, "npm/yarn/pnpm", node.PackageManager)
	assert.Equal(t, "A web app", node.Description)
	assert.Equal(t, []string{"next", "react"}, node.Dependencies["dependencies"])
	assert.Equal(t, []string{"jest"}, node.Dependencies["devDependencies"])
	assert.Contains(t, node.Frameworks, "Next.js")
	assert.Contains(t, node.Frameworks, "React")
	assert.Contains(t, node.Frameworks, "Jest")

	gomod := results[1]
	assert.Equal(t, schema.GoModManifest, gomod.Kind)
	assert.Equal(t, "Go modules", gomod.PackageManager)
	assert.Equal(t, []string{"github.com/gin-gonic/gin", "github.com/stretchr/testify"}, gomod.Dependencies["go_modules"])
	assert.Equal(t, []string{"Gin", "Testify"}, gomod.Frameworks)
}

func TestScanManifestsEmptyDir(t *testing.T) {
	results, diags := ScanManifests(t.TempDir())
	assert.Empty(t, results)
	assert.Empty(t, diags)
}

func TestParseNodeManifestInvalidJSON(t *testing.T) {
	res := parseNodeManifest("{not json")
	assert.True(t, res.Empty())
}

func TestParseCargoManifest(t *testing.T) {
	content := `[package]
name = "demo"
version = "0.1.0"
description = "A sample crate"

[dependencies]
serde = "1"
tokio = { version = "1", features = ["full"] }
`
	res := parseCargoManifest(content)

	assert.Equal(t, "Cargo", res.PackageManager)
	assert.Equal(t, "A sample crate", res.Description)
	assert.Equal(t, []string{"Serde", "Tokio"}, res.Frameworks)
	// Package-section keys stay out of the crate list.
	assert.Equal(t, []string{"serde", "tokio"}, res.Dependencies["crates"])
}

func TestParsePythonManifest(t *testing.T) {
	content := "django>=4.2\nrequests==2.31.0\n# a comment\npytest\n"
	res := parsePythonManifest(content)

	assert.Equal(t, "pip", res.PackageManager)
	assert.Equal(t, []string{"Django", "pytest"}, res.Frameworks)
	assert.Equal(t, []string{"django", "requests", "pytest"}, res.Dependencies["python"])
}

func TestParseGemManifest(t *testing.T) {
	content := "source 'https://rubygems.org'\n\ngem 'rails', '~> 7.0'\ngem \"rspec\"\n"
	res := parseGemManifest(content)

	assert.Equal(t, "Bundler", res.PackageManager)
	assert.Equal(t, []string{"Ruby on Rails", "RSpec"}, res.Frameworks)
	assert.Equal(t, []string{"rails", "rspec"}, res.Dependencies["gems"])
}

func TestParseJVMManifest(t *testing.T) {
	content := `<dependencies>
  <dependency>
    <groupId>org.springframework.boot</groupId>
    <artifactId>spring-boot-starter-web</artifactId>
  </dependency>
  <dependency>
    <groupId>org.junit.jupiter</groupId>
    <artifactId>junit-jupiter</artifactId>
  </dependency>
</dependencies>`
	res := parseJVMManifest(content)

	assert.Equal(t, "Maven/Gradle", res.PackageManager)
	assert.Contains(t, res.Frameworks, "Spring Boot")
	assert.Contains(t, res.Frameworks, "JUnit")
}

func TestParseSwiftManifest(t *testing.T) {
	content := `dependencies: [
    .package(url: "https://github.com/vapor/vapor.git", from: "4.0.0"),
]`
	res := parseSwiftManifest(content)

	assert.Equal(t, "Swift Package Manager", res.PackageManager)
	assert.Equal(t, []string{"vapor"}, res.Frameworks)
}

func TestParseComposerManifest(t *testing.T) {
	content := `{
		"require": {"php": ">=8.1", "laravel/framework": "^10.0"},
		"require-dev": {"phpunit/phpunit": "^10.0"}
	}`
	res := parseComposerManifest(content)

	assert.Equal(t, "Composer", res.PackageManager)
	assert.Contains(t, res.Frameworks, "Laravel")
	assert.Contains(t, res.Frameworks, "PHPUnit")
	// The php-prefixed entries, runtime constraint included, stay out.
	assert.Equal(t, []string{"laravel/framework"}, res.Dependencies["composer"])
}

func TestAppendUnique(t *testing.T) {
	list := appendUnique(nil, "a")
	list = appendUnique(list, "b")
	list = appendUnique(list, "a")
	assert.Equal(t, []string{"a", "b"}, list)
}
