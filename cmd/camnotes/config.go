package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/aretw0/camnotes"
	"github.com/aretw0/camnotes/pkg/adapters/device"
	"github.com/aretw0/camnotes/pkg/core"
)

func bindFlags() error {
	for key, flag := range map[string]string{
		"data_dir":    "data-dir",
		"backend":     "backend",
		"library_dir": "library-dir",
	} {
		if err := viper.BindPFlag(key, captureCmd.Root().PersistentFlags().Lookup(flag)); err != nil {
			return err
		}
	}
	return viper.BindPFlag("inbox_dir", captureCmd.Flags().Lookup("inbox-dir"))
}

func initConfig() error {
	if err := bindFlags(); err != nil {
		return err
	}

	cwd, _ := os.Getwd()
	root, rootErr := camnotes.FindDataRoot(cwd)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if rootErr == nil {
			viper.AddConfigPath(root)
		}
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "camnotes"))
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("camnotes")
	}

	viper.SetEnvPrefix("CAMNOTES")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("backend", "fs")
	viper.SetDefault("permissions.camera", string(device.PolicyPrompt))
	viper.SetDefault("permissions.media", string(device.PolicyPrompt))
	viper.SetDefault("dev_safety", true)

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "path", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		return failure("Failed to read config", err)
	}
	return nil
}

// dataDir resolves the data directory: explicit setting, then the nearest
// .camnotes root above the working directory, then the per-user default.
func dataDir() (string, error) {
	if dir := viper.GetString("data_dir"); dir != "" {
		return dir, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if root, err := camnotes.FindDataRoot(cwd); err == nil {
		return root, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "camnotes"), nil
}

func permissionPolicies() (map[core.PermissionKind]device.Policy, error) {
	policies := make(map[core.PermissionKind]device.Policy)
	for _, kind := range []core.PermissionKind{core.PermissionCamera, core.PermissionMedia} {
		p, err := device.ParsePolicy(viper.GetString("permissions." + string(kind)))
		if err != nil {
			return nil, fmt.Errorf("permissions.%s: %w", kind, err)
		}
		policies[kind] = p
	}
	return policies, nil
}

// openApp assembles the App from the configuration. With bootstrap it runs
// App.Bootstrap (permission requests plus load); otherwise it only loads the
// stored notes. extra options are applied last. The caller must Close the App.
func openApp(ctx context.Context, bootstrap bool, extra ...camnotes.Option) (*camnotes.App, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, failure("Failed to resolve data directory", err)
	}

	policies, err := permissionPolicies()
	if err != nil {
		return nil, failure("Invalid configuration", err)
	}

	opts := []camnotes.Option{
		camnotes.WithLogger(slog.Default()),
		camnotes.WithAdapter(viper.GetString("backend")),
		camnotes.WithPermissions(device.NewGrants(policies, confirmPermission)),
		camnotes.WithDevSafety(viper.GetBool("dev_safety")),
	}
	if lib := viper.GetString("library_dir"); lib != "" {
		opts = append(opts, camnotes.WithLibraryDir(lib))
	}
	opts = append(opts, extra...)

	app, err := camnotes.New(dir, opts...)
	if err != nil {
		return nil, failure("Failed to initialize camnotes", err)
	}

	if bootstrap {
		err = app.Bootstrap(ctx)
	} else {
		err = app.Store.Load(ctx)
	}
	if err != nil {
		_ = app.Close()
		return nil, failure("Failed to load notes", err)
	}
	return app, nil
}

func lookupNote(app *camnotes.App, id string) (core.Note, error) {
	note, ok := app.Store.Get(id)
	if !ok {
		return core.Note{}, failure("Unknown note", fmt.Errorf("%w: %s", core.ErrNotFound, id))
	}
	return note, nil
}
