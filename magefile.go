//go:build mage
// +build mage

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	DOCKER_DEFAULT_CONTEXT       = "default"
	DOCKER_BUILDX_CACHE_DIR_NAME = ".dockercache"
	DOCKER_BUILDER_NAME          = "container"
	DOCKER_COMPOSE_FILE          = "docker-compose.yml"

	DOCKER_ERR_BUILDX_CREATE_EXISTING_INSTANCE = "ERROR: existing instance"
)

var Default = Build

var binaries = map[string]string{
	"salon-server":    "./cmd/salon-server",
	"salon-functions": "./cmd/salon-functions",
	"salonctl":        "./cmd/salonctl",
}

// Build compiles every binary into bin/.
func Build() error {
	names := make([]string, 0, len(binaries))
	for name := range binaries {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := sh.RunV("go", "build", "-o", filepath.Join("bin", name), binaries[name]); err != nil {
			return fmt.Errorf("build %s: %w", name, err)
		}
	}
	return nil
}

// Generate regenerates the echo controllers from api/openapi.yaml.
func Generate() error {
	return sh.RunV("go", "generate", "./api/...")
}

func Test() error {
	return sh.RunV("go", "test", "-race", "-count=1", "./...")
}

// Lint fails on unformatted files, then runs go vet.
func Lint() error {
	out, err := sh.Output("gofmt", "-l", "api", "cmd", "functions", "internal", "pkg")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s", out)
	}
	return sh.RunV("go", "vet", "./...")
}

type DockerServiceBuild struct {
	Target string            `json:"target"`
	Args   map[string]string `json:"args"`
}

type DockerComposeService struct {
	Name  string
	Build DockerServiceBuild `json:"build"`
}

type DockerComposeFile struct {
	Name        string                          `json:"name"`
	RawServices map[string]DockerComposeService `json:"services"`
	Services    []DockerComposeService          `json:"-"`
}

func parseDockerComposeFile(src []byte) (DockerComposeFile, error) {
	var file DockerComposeFile
	if err := json.NewDecoder(bytes.NewReader(src)).Decode(&file); err != nil {
		return file, fmt.Errorf("unable decode compose config: %w", err)
	}
	for name, service := range file.RawServices {
		service.Name = name
		file.Services = append(file.Services, service)
	}
	sort.Slice(file.Services, func(i, j int) bool {
		return file.Services[i].Name < file.Services[j].Name
	})
	return file, nil
}

func dockerComposeConfig(composeFilePath string) (DockerComposeFile, error) {
	out, err := sh.Output("docker-compose", "-f", composeFilePath, "config", "--format", "json")
	if err != nil {
		return DockerComposeFile{}, fmt.Errorf("docker-compose config: %w", err)
	}
	return parseDockerComposeFile([]byte(out))
}

func dockerContextUse(name string) error {
	if err := sh.Run("docker", "context", "use", name); err != nil {
		return err
	}
	fmt.Printf("[Docker] Use context %s.\n", name)
	return nil
}

var ErrExistingBuilder = errors.New("docker buildkit builder already exists")

func buildxCreateBuilder(builderName, contextName string) error {
	var stderr bytes.Buffer
	_, err := sh.Exec(nil, os.Stdout, &stderr, "docker", "buildx", "create",
		"--name", builderName,
		"--driver=docker-container",
		contextName,
	)
	if err == nil {
		return nil
	}
	if strings.HasPrefix(stderr.String(), DOCKER_ERR_BUILDX_CREATE_EXISTING_INSTANCE) {
		fmt.Println("[Docker]", ErrExistingBuilder.Error(), "name:", builderName)
		return nil
	}
	return fmt.Errorf("%s", stderr.String())
}

func buildxArgs(cache, target, label string, args map[string]string, push bool) []string {
	command := []string{
		"buildx", "build",
		fmt.Sprintf("--builder=%s", DOCKER_BUILDER_NAME),
		fmt.Sprintf("--cache-from=type=local,src=%s", cache),
		"--target", target,
		"--label", label,
	}
	if push {
		command = append(command, "--tag", fmt.Sprintf("%s:latest", label), "--load")
	} else {
		command = append(command, fmt.Sprintf("--cache-to=type=local,dest=%s", cache))
	}

	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		command = append(command, "--build-arg", fmt.Sprintf("%s=%s", name, args[name]))
	}
	return append(command, ".")
}

func buildKit(contextName string, file DockerComposeFile, push bool) error {
	if err := dockerContextUse(contextName); err != nil {
		return fmt.Errorf("unable select docker context: %w", err)
	}
	defer dockerContextUse(DOCKER_DEFAULT_CONTEXT)

	if err := buildxCreateBuilder(DOCKER_BUILDER_NAME, DOCKER_DEFAULT_CONTEXT); err != nil {
		return fmt.Errorf("unable create buildx %s builder for %s context: %w", DOCKER_BUILDER_NAME, DOCKER_DEFAULT_CONTEXT, err)
	}

	dirPath, err := os.Getwd()
	if err != nil {
		return err
	}
	cacheDir := path.Join(dirPath, DOCKER_BUILDX_CACHE_DIR_NAME)
	fmt.Printf("[Docker] Use CACHE_DIR: %s | BUILDER_NAME: %s\n", cacheDir, DOCKER_BUILDER_NAME)

	for _, service := range file.Services {
		if service.Build.Target == "" {
			fmt.Printf("[Docker] Skip %s, no build target\n", service.Name)
			continue
		}
		label := fmt.Sprintf("%s-%s", file.Name, service.Name)
		args := buildxArgs(cacheDir, service.Build.Target, label, service.Build.Args, push)
		fmt.Printf("[Docker] Build image %s\n", label)
		if err := sh.RunV("docker", args...); err != nil {
			fmt.Printf("[Docker] Build | Error: %s\n", err)
		}
	}
	return nil
}

// Buildx builds every compose service target with a local layer cache.
func Buildx(composeFilePath string) error {
	mg.Deps(Test)

	file, err := dockerComposeConfig(composeFilePath)
	if err != nil {
		return err
	}
	return buildKit(DOCKER_DEFAULT_CONTEXT, file, false)
}

// Images builds the images of the repository compose file.
func Images() error {
	return Buildx(DOCKER_COMPOSE_FILE)
}

// BuildxDeploy builds and loads tagged images into the given docker context.
func BuildxDeploy(contextName, composeFilePath string) error {
	file, err := dockerComposeConfig(composeFilePath)
	if err != nil {
		return err
	}
	return buildKit(contextName, file, true)
}
