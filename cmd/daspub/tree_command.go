package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"daspub/internal/archive"
)

type treeNode struct {
	Level    string           `json:"level"`
	Name     string           `json:"name"`
	Path     string           `json:"path"`
	Status   *archive.Verdict `json:"status,omitempty"`
	Children []*treeNode      `json:"children,omitempty"`
}

func newTreeCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var depth string

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the archive hierarchy with statuses",
		RunE: func(cmd *cobra.Command, args []string) error {
			maxLevel, err := parseDepth(depth)
			if err != nil {
				return err
			}
			archives, err := ctx.openArchives(cmd)
			if err != nil {
				return err
			}
			roots, err := buildTree(cmd, archive.NewMemo(), archives, maxLevel)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, roots)
			}
			colorize := shouldColorize(cmd.OutOrStdout())
			for _, root := range roots {
				printTree(cmd, root, 0, colorize)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&depth, "depth", "assignment", "Deepest level to show (archive, program, course, assignment)")
	return cmd
}

func parseDepth(value string) (archive.Level, error) {
	for _, level := range []archive.Level{archive.LevelArchive, archive.LevelProgram, archive.LevelCourse, archive.LevelAssignment} {
		if strings.EqualFold(strings.TrimSpace(value), level.String()) {
			return level, nil
		}
	}
	return 0, fmt.Errorf("unknown depth %q", value)
}

func buildTree(cmd *cobra.Command, src archive.Source, archives []*archive.Archive, maxLevel archive.Level) ([]*treeNode, error) {
	var (
		roots   []*treeNode
		program *treeNode
		course  *treeNode
	)
	err := archive.Walk(src, archives, func(n archive.Node) error {
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		node := &treeNode{Level: n.Level.String(), Name: n.Name()}
		switch n.Level {
		case archive.LevelArchive:
			node.Path = n.Archive.Path()
			roots = append(roots, node)
		case archive.LevelProgram:
			node.Path = n.Program.Path()
			parent := roots[len(roots)-1]
			parent.Children = append(parent.Children, node)
			program = node
		case archive.LevelCourse:
			node.Path = n.Course.Path()
			v := src.CourseStatus(n.Course)
			node.Status = &v
			program.Children = append(program.Children, node)
			course = node
		case archive.LevelAssignment:
			node.Path = n.Assignment.Path()
			v := src.AssignmentStatus(n.Assignment)
			node.Status = &v
			course.Children = append(course.Children, node)
		}
		if n.Level >= maxLevel {
			return archive.SkipChildren
		}
		return nil
	})
	return roots, err
}

func printTree(cmd *cobra.Command, node *treeNode, depth int, colorize bool) {
	line := strings.Repeat("  ", depth) + node.Name
	if node.Status != nil {
		line += "  [" + statusCell(node.Status.Status, colorize) + "]"
		if node.Status.Reason != "" {
			line += " " + node.Status.Reason
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), line)
	for _, child := range node.Children {
		printTree(cmd, child, depth+1, colorize)
	}
}
