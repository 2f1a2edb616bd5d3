// cmd/career-cli/registry.go
package main

import (
	"fmt"
	"io"
	"strings"

	"career-workers/pkg/registry"

	"github.com/spf13/cobra"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Inspect and update the activity registry",
}

var registryCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the activity registry",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRegistryCheck(cmd.OutOrStdout(), registryPath)
	},
}

var registryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered activities",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRegistryList(cmd.OutOrStdout(), registryPath)
	},
}

var registrySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update one field of an activity",
	Long:  "Sets status, version, displayName, description, category, taskType, timeout or retries on the activity with the given id.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRegistrySet(cmd.OutOrStdout(), registryPath, registryID, registryField, registryValue)
	},
}

var (
	registryPath  string
	registryID    string
	registryField string
	registryValue string
)

func init() {
	registryCmd.PersistentFlags().StringVarP(&registryPath, "path", "p", "configs/activity-registry.json", "Path to activity registry")

	registrySetCmd.Flags().StringVar(&registryID, "id", "", "Activity ID (required)")
	registrySetCmd.Flags().StringVar(&registryField, "field", "", "Field to update (required)")
	registrySetCmd.Flags().StringVar(&registryValue, "value", "", "New value (required)")
	markRequired(registrySetCmd, "id", "field", "value")

	registryCmd.AddCommand(registryCheckCmd, registryListCmd, registrySetCmd)
	rootCmd.AddCommand(registryCmd)
}

func runRegistryCheck(w io.Writer, path string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if err := reg.Validate(); err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Fprintln(w, errorStyle.Render("✗ "+line))
		}
		return fmt.Errorf("registry %s is invalid", path)
	}
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("✓ Registry valid: %d activities", len(reg.Activities))))
	return nil
}

func runRegistryList(w io.Writer, path string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Activity Registry v%s", reg.Version)))
	for _, a := range reg.Activities {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render(a.TaskType), valueStyle.Render(fmt.Sprintf("%s [%s] timeout=%s retries=%d", a.ID, a.ImplementationStatus, a.Timeout, a.Retries)))
	}
	return nil
}

func runRegistrySet(w io.Writer, path, id, field, value string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	var activity *registry.Activity
	for i := range reg.Activities {
		if reg.Activities[i].ID == id {
			activity = &reg.Activities[i]
			break
		}
	}
	if activity == nil {
		return fmt.Errorf("%w: %s", registry.ErrActivityNotFound, id)
	}

	if err := activity.Set(field, value); err != nil {
		return err
	}
	if err := reg.Validate(); err != nil {
		return fmt.Errorf("update would leave registry invalid: %w", err)
	}
	if err := reg.Save(path); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s %s.%s = %s\n", labelStyle.Render("Updated"), id, field, value)
	return nil
}
