package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/camnotes"
	"github.com/aretw0/camnotes/pkg/adapters/fs"
	"github.com/aretw0/camnotes/pkg/core"
)

var statusMermaid bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the internal state of the note store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(context.Background(), false)
		if err != nil {
			return err
		}
		defer app.Close()

		if statusMermaid {
			config := introspection.DefaultDiagramConfig()
			config.SecondaryID = "camnotes"
			config.SecondaryLabel = "Camera Notes"
			fmt.Println(introspection.TreeDiagram(buildTree(app), config))
			return nil
		}

		report := map[string]any{"data_dir": app.DataDir}
		for _, comp := range app.Components() {
			if intro, ok := comp.(introspection.Introspectable); ok {
				report[comp.ComponentType()] = intro.State()
			}
		}

		encoder := yaml.NewEncoder(os.Stdout)
		encoder.SetIndent(2)
		if err := encoder.Encode(report); err != nil {
			return failure("Error encoding status", err)
		}
		return encoder.Close()
	},
}

type statusNode struct {
	Name     string
	Status   string
	Metadata map[string]string
	Children []statusNode
}

// buildTree maps component states onto diagram nodes.
// Status must match classes in introspection.DefaultStyles().
func buildTree(app *camnotes.App) statusNode {
	root := statusNode{
		Name:   "App",
		Status: "running",
		Metadata: map[string]string{
			"type": "container",
			"path": app.DataDir,
		},
	}

	for _, comp := range app.Components() {
		intro, ok := comp.(introspection.Introspectable)
		if !ok {
			continue
		}
		switch st := intro.State().(type) {
		case core.StoreState:
			root.Children = append(root.Children, statusNode{
				Name:   "Store",
				Status: "running",
				Metadata: map[string]string{
					"type":        "process",
					"notes":       fmt.Sprintf("%d", st.Notes),
					"subscribers": fmt.Sprintf("%d", st.Subscribers),
				},
			})
		case core.DraftsState:
			status := "suspended"
			if st.State != core.StateIdle {
				status = "running"
			}
			root.Children = append(root.Children, statusNode{
				Name:     "Drafts",
				Status:   status,
				Metadata: map[string]string{"type": "process", "state": string(st.State)},
			})
		case fs.KVState:
			root.Children = append(root.Children, statusNode{
				Name:   "Backend",
				Status: "running",
				Metadata: map[string]string{
					"type":   "container",
					"writes": fmt.Sprintf("%d", st.Writes),
				},
			})
		}
	}
	return root
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusMermaid, "mermaid", false, "Print a Mermaid diagram instead of YAML")
}
