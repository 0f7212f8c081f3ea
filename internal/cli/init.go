// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/api2spec/ktbridge/internal/config"
)

const defaultConfigFile = "ktbridge.yaml"

var (
	initForce       bool
	initInteractive bool
	initTitle       string
	initVersion     string
	initDescription string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new ktbridge configuration file",
	Long: `Initialize a new ktbridge configuration file in the current directory.

This command creates a ktbridge.yaml file with sensible defaults
that you can customize for your project.

Features:
  - Infers API title from rootProject.name in settings.gradle(.kts)
  - Detects Gradle source set directories
  - Sets up exclude patterns for build output and tests

Example:
  ktbridge init                         # Create config
  ktbridge init --force                 # Overwrite existing config
  ktbridge init --interactive           # Interactive mode with prompts
  ktbridge init --title "Pet Store API" # Set custom API title`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	initCmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "interactive mode with prompts")
	initCmd.Flags().StringVar(&initTitle, "title", "", "API title for OpenAPI info")
	initCmd.Flags().StringVar(&initVersion, "version", "", "API version for OpenAPI info")
	initCmd.Flags().StringVar(&initDescription, "description", "", "API description for OpenAPI info")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := defaultConfigFile

	if _, err := os.Stat(configFile); err == nil && !initForce {
		return fmt.Errorf("config file %s already exists, use --force to overwrite", configFile)
	}

	projectRoot, err := filepath.Abs(".")
	if err != nil {
		return fmt.Errorf("failed to determine project root: %w", err)
	}

	cfg := config.Default()

	info := detectProjectInfo(projectRoot)
	if initTitle != "" {
		cfg.OpenAPI.Info.Title = initTitle
	} else if info.Title != "" {
		cfg.OpenAPI.Info.Title = info.Title
		printVerbose("Detected project: %s", info.Name)
	}
	if initVersion != "" {
		cfg.OpenAPI.Info.Version = initVersion
	}
	if initDescription != "" {
		cfg.OpenAPI.Info.Description = initDescription
	}

	if usesKtor(projectRoot) {
		printInfo("Detected Ktor project")
	} else {
		printInfo("No io.ktor dependency found; only data classes and route blocks in the sources will be read")
	}

	entryPoints := detectEntryPoints(projectRoot)
	cfg.Source.Paths = entryPoints
	printVerbose("Detected source paths: %s", strings.Join(entryPoints, ", "))

	if initInteractive && isTerminal() {
		interactiveInit(cfg, os.Stdin, stdout)
	}

	if err := os.WriteFile(configFile, []byte(buildConfigYAML(cfg)), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	printInfo("Created %s", configFile)
	printVerbose("Output: %s", cfg.Output)
	printVerbose("Paths: %s", strings.Join(cfg.Source.Paths, ", "))

	return nil
}

// projectInfo holds information detected from the project.
type projectInfo struct {
	Name  string
	Title string
}

var rootProjectName = regexp.MustCompile(`rootProject\.name\s*=\s*["']([^"']+)["']`)

// detectProjectInfo reads rootProject.name from the Gradle settings file.
func detectProjectInfo(projectRoot string) projectInfo {
	for _, name := range []string{"settings.gradle.kts", "settings.gradle"} {
		data, err := os.ReadFile(filepath.Join(projectRoot, name))
		if err != nil {
			continue
		}
		m := rootProjectName.FindSubmatch(data)
		if m == nil {
			continue
		}
		return projectInfo{Name: string(m[1]), Title: titleOf(string(m[1]))}
	}
	return projectInfo{}
}

// titleOf turns "pet-store" or "pet_store" into "Pet Store API".
func titleOf(name string) string {
	name = strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(name)
	return cases.Title(language.English).String(strings.Join(strings.Fields(name), " ")) + " API"
}

// usesKtor reports whether a Gradle build file in projectRoot or app/
// mentions an io.ktor dependency.
func usesKtor(projectRoot string) bool {
	for _, dir := range []string{".", "app", "server"} {
		for _, name := range []string{"build.gradle.kts", "build.gradle"} {
			if fileMentions(filepath.Join(projectRoot, dir, name), "io.ktor") {
				return true
			}
		}
	}
	return false
}

func fileMentions(path, needle string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer func() { _ = file.Close() }()

	lines := bufio.NewScanner(file)
	for lines.Scan() {
		if strings.Contains(lines.Text(), needle) {
			return true
		}
	}
	return false
}

// detectEntryPoints finds the Kotlin source set directories of the project.
func detectEntryPoints(projectRoot string) []string {
	var paths []string

	candidates := []string{
		"src/main/kotlin",
		"app/src/main/kotlin",
		"server/src/main/kotlin",
		"src/jvmMain/kotlin",
		"src/commonMain/kotlin",
	}
	for _, p := range candidates {
		fullPath := filepath.Join(projectRoot, filepath.FromSlash(p))
		if stat, err := os.Stat(fullPath); err == nil && stat.IsDir() {
			paths = append(paths, "./"+p)
		}
	}

	if len(paths) == 0 {
		paths = []string{"."}
	}
	return paths
}

// isTerminal checks if stdin is a terminal.
func isTerminal() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// interactiveInit prompts for the main configuration options. An empty
// answer keeps the current value.
func interactiveInit(cfg *config.Config, in io.Reader, out io.Writer) {
	reader := bufio.NewReader(in)
	ask := func(prompt string, value *string) {
		fmt.Fprintf(out, "%s [%s]: ", prompt, *value)
		answer, _ := reader.ReadString('\n')
		if answer = strings.TrimSpace(answer); answer != "" {
			*value = answer
		}
	}

	ask("API Title", &cfg.OpenAPI.Info.Title)
	ask("API Version", &cfg.OpenAPI.Info.Version)
	ask("API Description", &cfg.OpenAPI.Info.Description)
	ask("Output file", &cfg.Output)
	ask("Output format (yaml/json)", &cfg.Format)
}

// buildConfigYAML builds a YAML config with a header comment.
func buildConfigYAML(cfg *config.Config) string {
	data, _ := yaml.Marshal(cfg)

	header := `# ktbridge configuration file
# https://github.com/api2spec/ktbridge

`
	return header + string(data)
}
