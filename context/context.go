package context

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/a8m/envsubst"
)

// defaultPort is the port the local development server listens on.
const defaultPort = 7673

// envServerURL, when set, overrides the server URL of whatever context
// is loaded.
const envServerURL = "SEQUIN_URL"

type Context struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ServerURL   string `json:"server_url"`
}

// GetServerURL returns the server URL based on the current context
func GetServerURL(ctx *Context) (string, error) {
	if ctx == nil || ctx.ServerURL == "" {
		return "", fmt.Errorf("server URL is not set")
	}

	return strings.TrimSuffix(ctx.ServerURL, "/"), nil
}

// DefaultContext returns the context used when none has been configured.
func DefaultContext() *Context {
	return &Context{
		Name:        "default",
		Description: "default context",
		ServerURL:   fmt.Sprintf("http://localhost:%d", defaultPort),
	}
}

func SaveContext(ctx Context) error {
	dir, err := contextDir()
	if err != nil {
		return err
	}

	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return fmt.Errorf("could not create contexts directory: %w", err)
	}

	file := filepath.Join(dir, ctx.Name+".json")
	data, err := json.MarshalIndent(ctx, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal context: %w", err)
	}

	err = os.WriteFile(file, data, 0644)
	if err != nil {
		return fmt.Errorf("could not write context file: %w", err)
	}

	return nil
}

// LoadContext loads a named context. With an empty name it loads the
// default context, falling back to the built-in default when none has
// been saved. SEQUIN_URL, when set, overrides the server URL either way.
func LoadContext(name string) (*Context, error) {
	ctx, err := loadContext(name)
	if err != nil {
		return nil, err
	}

	if url := os.Getenv(envServerURL); url != "" {
		ctx.ServerURL = url
	}

	return ctx, nil
}

func loadContext(name string) (*Context, error) {
	if name == "" {
		defaultName, err := getDefaultContextName()
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return DefaultContext(), nil
			}
			return nil, err
		}
		name = defaultName
	}

	dir, err := contextDir()
	if err != nil {
		return nil, err
	}

	file := filepath.Join(dir, name+".json")
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("could not read context file: %w", err)
	}

	// Context files may reference environment variables, e.g.
	// "server_url": "${SEQUIN_STAGING_URL}".
	data, err = envsubst.Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("could not interpolate context file: %w", err)
	}

	var ctx Context
	err = json.Unmarshal(data, &ctx)
	if err != nil {
		return nil, fmt.Errorf("could not unmarshal context: %w", err)
	}

	return &ctx, nil
}

func ListContexts() ([]Context, error) {
	dir, err := contextDir()
	if err != nil {
		return nil, err
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not read contexts directory: %w", err)
	}

	var contexts []Context
	for _, file := range files {
		if filepath.Ext(file.Name()) == ".json" {
			ctx, err := loadContext(strings.TrimSuffix(file.Name(), ".json"))
			if err != nil {
				return nil, fmt.Errorf("could not load context %s: %w", file.Name(), err)
			}
			contexts = append(contexts, *ctx)
		}
	}

	return contexts, nil
}

func RemoveContext(name string) error {
	dir, err := contextDir()
	if err != nil {
		return err
	}

	file := filepath.Join(dir, name+".json")
	err = os.Remove(file)
	if err != nil {
		return fmt.Errorf("could not remove context file: %w", err)
	}

	defaultName, err := getDefaultContextName()
	if err == nil && defaultName == name {
		err = removeDefaultContext()
		if err != nil {
			return fmt.Errorf("could not remove default context: %w", err)
		}
	}

	return nil
}

const defaultContextFile = ".default_context"

func SetDefaultContext(name string) error {
	dir, err := configDir()
	if err != nil {
		return err
	}

	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return fmt.Errorf("could not create .sequin directory: %w", err)
	}

	file := filepath.Join(dir, defaultContextFile)
	err = os.WriteFile(file, []byte(name), 0644)
	if err != nil {
		return fmt.Errorf("could not write default context file: %w", err)
	}

	return nil
}

func getDefaultContextName() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(filepath.Join(dir, defaultContextFile))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(data)), nil
}

func removeDefaultContext() error {
	dir, err := configDir()
	if err != nil {
		return err
	}

	err = os.Remove(filepath.Join(dir, defaultContextFile))
	if err != nil {
		return fmt.Errorf("could not remove default context file: %w", err)
	}

	return nil
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get user home directory: %w", err)
	}

	return filepath.Join(home, ".sequin"), nil
}

func contextDir() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "contexts"), nil
}
